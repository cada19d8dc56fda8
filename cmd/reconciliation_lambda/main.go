package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/config"
	dydbstore "github.com/chris/apartment-rentals/pkg/storage/dynamodb"
)

var (
	reconciler *booking.Reconciler
	maxAge     time.Duration
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	reconciler = booking.NewReconciler(dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables))
	maxAge = cfg.ReconcileMaxAge
}

// HandleRequest is triggered by an EventBridge Schedule. It repairs paid
// payments whose reservation never reached paid.
func HandleRequest(ctx context.Context) (booking.ReconcileReport, error) {
	log.Printf("Starting reconciliation of payments older than %s...", maxAge)

	report, err := reconciler.Reconcile(ctx, maxAge)
	if err != nil {
		log.Printf("ERROR: reconciliation failed: %v", err)
		return report, err
	}

	log.Printf("Reconciliation finished: examined=%d repaired=%d skipped=%d failed=%d",
		report.Examined, report.Repaired, report.Skipped, report.Failed)
	return report, nil
}

func main() {
	lambda.Start(HandleRequest)
}
