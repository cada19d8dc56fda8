package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/config"
	"github.com/chris/apartment-rentals/pkg/queue"
	dydbstore "github.com/chris/apartment-rentals/pkg/storage/dynamodb"
)

var stamper *booking.ReceiptStamper

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	stamper = booking.NewReceiptStamper(dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables))
}

// HandleRequest consumes payment events and stamps a receipt number on every
// paid payment. Failed records are reported back so SQS retries only those.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse

	for _, message := range sqsEvent.Records {
		event, err := queue.DecodePaymentEvent(message.Body)
		if err != nil {
			// A malformed body will never decode; retrying it is pointless.
			log.Printf("ERROR: dropping message %s: %v", message.MessageId, err)
			continue
		}

		stamped, err := stamper.Stamp(ctx, event)
		if err != nil {
			log.Printf("ERROR: failed to stamp receipt for reservation %s: %v", event.ReservationID, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}
		if stamped {
			log.Printf("Stamped receipt for reservation %s", event.ReservationID)
		}
	}

	return resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}
