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

// CancelReservation marks the reservation cancelled and releases its range on
// the listing. The status update is conditioned on res.Status, so a concurrent
// payment or cancellation makes this fail with ErrStatusConflict.
func (s *Store) CancelReservation(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for cancellation: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.ReservationsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: res.Id},
					},
					UpdateExpression:    aws.String("SET #status = :cancelled_status, updated_at = :now"),
					ConditionExpression: aws.String("#status = :current_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cancelled_status": &types.AttributeValueMemberS{Value: string(models.ReservationCancelled)},
						":current_status":   &types.AttributeValueMemberS{Value: string(res.Status)},
						":now":              nowAV,
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(s.ListingsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: res.ListingId},
					},
					UpdateExpression:    aws.String("REMOVE booked_ranges.#rid SET booking_version = booking_version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(id)"),
					ExpressionAttributeNames: map[string]string{
						"#rid": res.Id,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":inc": &types.AttributeValueMemberN{Value: "1"},
						":now": nowAV,
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if _, ok := cancellationReason(err, 0); ok {
			return nil, fmt.Errorf("reservation %s: %w", res.Id, storage.ErrStatusConflict)
		}
		if _, ok := cancellationReason(err, 1); ok {
			return nil, fmt.Errorf("listing %s: %w", res.ListingId, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to execute cancellation transaction: %w", err)
	}

	cancelled := *res
	cancelled.Status = models.ReservationCancelled
	cancelled.UpdatedAt = now
	return &cancelled, nil
}

// UpdateReservationStatus moves a reservation from one status to another with a
// compare-and-swap on the current status.
func (s *Store) UpdateReservationStatus(ctx context.Context, reservationID string, from, to models.ReservationStatus) (*models.Reservation, error) {
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ReservationsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: reservationID},
		},
		UpdateExpression:    aws.String("SET #status = :to_status, updated_at = :now"),
		ConditionExpression: aws.String("#status = :from_status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to_status":   &types.AttributeValueMemberS{Value: string(to)},
			":from_status": &types.AttributeValueMemberS{Value: string(from)},
			":now":         nowAV,
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if ccf, ok := isConditionalCheckFailed(err); ok {
			if ccf.Item == nil {
				return nil, fmt.Errorf("reservation %s: %w", reservationID, storage.ErrNotFound)
			}
			return nil, fmt.Errorf("reservation %s: %w", reservationID, storage.ErrStatusConflict)
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	var res models.Reservation
	if err := attributevalue.UnmarshalMap(result.Attributes, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservation: %w", err)
	}

	return &res, nil
}
