package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// maxReleasedRanges bounds the REMOVE clause of one reservation write. Any
// remainder is released by a later booking.
const maxReleasedRanges = 50

// CreateReservation atomically records the reservation's range on its listing
// and inserts the reservation. The listing update only succeeds if the
// listing's booking version still equals listingVersion and it is available,
// so two overlapping creates on one listing cannot both commit. The version
// check also makes it safe to drop the released ranges, which the caller read
// from that same version.
func (s *Store) CreateReservation(ctx context.Context, res *models.Reservation, listingVersion int64, released []string) (*models.Reservation, error) {
	slog.Log(ctx, slog.LevelDebug, "creating reservation", "reservation_id", res.Id, "listing_id", res.ListingId, "version", listingVersion, "released", len(released))

	resAV, err := attributevalue.MarshalMap(res)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation: %w", err)
	}

	rangeAV, err := attributevalue.Marshal(res.Range())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booked range: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	names := map[string]string{
		"#rid":       res.Id,
		"#available": "available",
	}
	update := "SET booked_ranges.#rid = :range, booking_version = booking_version + :inc, updated_at = :now"
	if len(released) > maxReleasedRanges {
		released = released[:maxReleasedRanges]
	}
	if len(released) > 0 {
		paths := make([]string, len(released))
		for i, id := range released {
			name := fmt.Sprintf("#released%d", i)
			names[name] = id
			paths[i] = "booked_ranges." + name
		}
		update += " REMOVE " + strings.Join(paths, ", ")
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Claim the range on the listing.
				Update: &types.Update{
					TableName: aws.String(s.ListingsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: res.ListingId},
					},
					UpdateExpression:         aws.String(update),
					ConditionExpression:      aws.String("booking_version = :version AND #available = :true"),
					ExpressionAttributeNames: names,
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":range":   rangeAV,
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", listingVersion)},
						":true":    &types.AttributeValueMemberBOOL{Value: true},
						":now":     nowAV,
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				// Operation 2: Create the reservation record.
				Put: &types.Put{
					TableName:           aws.String(s.ReservationsTableName),
					Item:                resAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if reason, ok := cancellationReason(err, 0); ok {
			return nil, listingConditionError(res.ListingId, reason.Item)
		}
		if _, ok := cancellationReason(err, 1); ok {
			return nil, fmt.Errorf("reservation %s: %w", res.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to execute reservation transaction: %w", err)
	}

	return res, nil
}

// listingConditionError explains why the listing condition of a reservation
// transaction failed, using the item DynamoDB returned with the cancellation.
func listingConditionError(listingID string, item map[string]types.AttributeValue) error {
	if item == nil {
		return fmt.Errorf("listing %s: %w", listingID, storage.ErrNotFound)
	}
	var listing models.Listing
	if err := attributevalue.UnmarshalMap(item, &listing); err != nil {
		return fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	if !listing.Available {
		return fmt.Errorf("listing %s: %w", listingID, storage.ErrListingUnavailable)
	}
	return fmt.Errorf("listing %s: %w", listingID, storage.ErrVersionConflict)
}
