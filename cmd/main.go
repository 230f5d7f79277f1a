package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Kennyy02/Samgyupmasaya/internal/customer"
	"github.com/Kennyy02/Samgyupmasaya/internal/notifier"
	"github.com/Kennyy02/Samgyupmasaya/internal/order"
	"github.com/Kennyy02/Samgyupmasaya/internal/product"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

func main() {
	mode := flag.String("mode", "", "Service mode: order-service, product-service, customer-service, notification-subscriber")
	flag.Parse()

	ctx := context.Background()
	mylog := logger.NewLogger(*mode)

	var err error
	switch *mode {
	case "order-service":
		err = order.Run(ctx, mylog, flag.Args())
	case "product-service":
		err = product.Run(ctx, mylog, flag.Args())
	case "customer-service":
		err = customer.Run(ctx, mylog, flag.Args())
	case "notification-subscriber":
		err = notifier.Run(ctx, mylog, flag.Args())
	default:
		fmt.Println("Invalid mode. Use --mode=order-service, --mode=product-service, --mode=customer-service, or --mode=notification-subscriber")
		os.Exit(1)
	}

	if err != nil {
		os.Exit(1)
	}
}
