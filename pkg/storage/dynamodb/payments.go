package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

const (
	paymentsByTimeGSI   = "gsi1pk-paid_at-index"
	paymentsByStatusGSI = "status-paid_at-index"

	// paidAtLayout keeps every paid_at the same width so the GSI sort key
	// orders like the instants it encodes. RFC3339Nano trims trailing zeros.
	paidAtLayout = "2006-01-02T15:04:05.000000000Z"
)

// paidAtValue encodes a paid_at sort key. The attributevalue decoder reads
// it back as an ordinary RFC3339 time.
func paidAtValue(t time.Time) *types.AttributeValueMemberS {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(paidAtLayout)}
}

// GetPayment retrieves the payment of a reservation.
func (s *Store) GetPayment(ctx context.Context, reservationID string) (*models.Payment, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"reservation_id": reservationID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.PaymentsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payment from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("payment for reservation %s: %w", reservationID, storage.ErrNotFound)
	}

	var payment models.Payment
	if err := attributevalue.UnmarshalMap(result.Item, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment: %w", err)
	}

	return &payment, nil
}

// ListPayments retrieves the most recent payments.
func (s *Store) ListPayments(ctx context.Context, limit int32) ([]models.Payment, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.PaymentsTableName),
		IndexName:              aws.String(paymentsByTimeGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: paymentsPartition},
		},
		ScanIndexForward: aws.Bool(false), // Sort by paid_at in descending order
		Limit:            &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for payments: %w", err)
	}

	var payments []models.Payment
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payments: %w", err)
	}

	return payments, nil
}

// ListSettledPayments returns paid payments whose paid_at is older than maxAge.
func (s *Store) ListSettledPayments(ctx context.Context, maxAge time.Duration) ([]models.Payment, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.PaymentsTableName),
		IndexName:              aws.String(paymentsByStatusGSI),
		KeyConditionExpression: aws.String("#status = :status AND paid_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PaymentPaid)},
			":cutoff": paidAtValue(time.Now().Add(-maxAge)),
		},
	}

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for settled payments: %w", err)
	}

	var payments []models.Payment
	if err := attributevalue.UnmarshalListOfMaps(items, &payments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settled payments: %w", err)
	}

	return payments, nil
}

// StampReceipt sets the receipt number of a payment once. It returns false
// without error when the payment already has a receipt, which makes redelivered
// events harmless.
func (s *Store) StampReceipt(ctx context.Context, reservationID, receiptNumber string) (bool, error) {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.PaymentsTableName),
		Key: map[string]types.AttributeValue{
			"reservation_id": &types.AttributeValueMemberS{Value: reservationID},
		},
		UpdateExpression:    aws.String("SET receipt_number = :receipt"),
		ConditionExpression: aws.String("attribute_exists(reservation_id) AND attribute_not_exists(receipt_number)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":receipt": &types.AttributeValueMemberS{Value: receiptNumber},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if ccf, ok := isConditionalCheckFailed(err); ok {
			if ccf.Item == nil {
				return false, fmt.Errorf("payment for reservation %s: %w", reservationID, storage.ErrNotFound)
			}
			return false, nil
		}
		return false, fmt.Errorf("failed to stamp receipt: %w", err)
	}

	return true, nil
}
