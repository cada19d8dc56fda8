package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

const paymentsPartition = "PAYMENTS"

// RecordPayment inserts the payment and advances its reservation in one
// transaction. The payments table is keyed by reservation_id, so the put
// condition is what guarantees a single payment per reservation.
func (s *Store) RecordPayment(ctx context.Context, payment *models.Payment, from, to models.ReservationStatus) (*models.Payment, error) {
	payment.GSI1PK = paymentsPartition

	slog.Log(ctx, slog.LevelDebug, "recording payment", "reservation_id", payment.ReservationId, "method", payment.Method, "status", payment.Status)

	paymentAV, err := attributevalue.MarshalMap(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment: %w", err)
	}
	paymentAV["paid_at"] = paidAtValue(payment.PaidAt)

	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Insert the payment.
				Put: &types.Put{
					TableName:           aws.String(s.PaymentsTableName),
					Item:                paymentAV,
					ConditionExpression: aws.String("attribute_not_exists(reservation_id)"),
				},
			},
			{
				// Operation 2: Link the payment and advance the reservation.
				Update: &types.Update{
					TableName: aws.String(s.ReservationsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: payment.ReservationId},
					},
					UpdateExpression:    aws.String("SET #status = :to_status, payment_id = :payment_id, updated_at = :now"),
					ConditionExpression: aws.String("#status = :from_status AND attribute_not_exists(payment_id)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":to_status":   &types.AttributeValueMemberS{Value: string(to)},
						":from_status": &types.AttributeValueMemberS{Value: string(from)},
						":payment_id":  &types.AttributeValueMemberS{Value: payment.Id},
						":now":         nowAV,
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if _, ok := cancellationReason(err, 0); ok {
			return nil, fmt.Errorf("reservation %s: %w", payment.ReservationId, storage.ErrDuplicatePayment)
		}
		if _, ok := cancellationReason(err, 1); ok {
			return nil, fmt.Errorf("reservation %s: %w", payment.ReservationId, storage.ErrStatusConflict)
		}
		return nil, fmt.Errorf("failed to execute payment transaction: %w", err)
	}

	return payment, nil
}

// SettlePayment confirms a pending payment and marks its reservation paid.
func (s *Store) SettlePayment(ctx context.Context, payment *models.Payment, from models.ReservationStatus) (*models.Payment, error) {
	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for settlement: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.PaymentsTableName),
					Key: map[string]types.AttributeValue{
						"reservation_id": &types.AttributeValueMemberS{Value: payment.ReservationId},
					},
					UpdateExpression:    aws.String("SET #status = :paid_status, paid_at = :paid_at"),
					ConditionExpression: aws.String("#status = :pending_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":paid_status":    &types.AttributeValueMemberS{Value: string(models.PaymentPaid)},
						":pending_status": &types.AttributeValueMemberS{Value: string(models.PaymentPending)},
						":paid_at":        paidAtValue(now),
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(s.ReservationsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: payment.ReservationId},
					},
					UpdateExpression:    aws.String("SET #status = :paid_status, updated_at = :now"),
					ConditionExpression: aws.String("#status = :from_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":paid_status": &types.AttributeValueMemberS{Value: string(models.ReservationPaid)},
						":from_status": &types.AttributeValueMemberS{Value: string(from)},
						":now":         nowAV,
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if reason, ok := cancellationReason(err, 0); ok {
			if reason.Item == nil {
				return nil, fmt.Errorf("payment for reservation %s: %w", payment.ReservationId, storage.ErrNotFound)
			}
			return nil, fmt.Errorf("payment for reservation %s: %w", payment.ReservationId, storage.ErrStatusConflict)
		}
		if _, ok := cancellationReason(err, 1); ok {
			return nil, fmt.Errorf("reservation %s: %w", payment.ReservationId, storage.ErrStatusConflict)
		}
		return nil, fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	settled := *payment
	settled.Status = models.PaymentPaid
	settled.PaidAt = now
	return &settled, nil
}
