package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

const (
	listingIDIndex = "listing_id-index"
	renterIDIndex  = "renter_id-index"
)

// GetReservation retrieves a reservation from DynamoDB by its ID.
func (s *Store) GetReservation(ctx context.Context, reservationID string) (*models.Reservation, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": reservationID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.ReservationsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, storage.ErrNotFound)
	}

	var res models.Reservation
	if err := attributevalue.UnmarshalMap(result.Item, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservation: %w", err)
	}

	return &res, nil
}

// ListReservations queries the renter or listing index when the filter names
// one, and scans otherwise. Results are ordered newest first.
func (s *Store) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	var (
		items []map[string]types.AttributeValue
		err   error
	)

	switch {
	case filter.RenterId != "":
		items, err = s.queryReservations(ctx, renterIDIndex, "renter_id", filter.RenterId, filter)
	case filter.ListingId != "":
		items, err = s.queryReservations(ctx, listingIDIndex, "listing_id", filter.ListingId, filter)
	default:
		items, err = s.scanReservations(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := attributevalue.UnmarshalListOfMaps(items, &reservations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservations: %w", err)
	}

	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})

	return reservations, nil
}

func (s *Store) queryReservations(ctx context.Context, index, keyAttr, keyValue string, filter models.ReservationFilter) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ReservationsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(keyAttr + " = :key"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: keyValue},
		},
	}
	expr, names, values := reservationFilterExpression(filter, keyAttr)
	if expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		for k, v := range values {
			input.ExpressionAttributeValues[k] = v
		}
	}

	items, err := s.queryAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations by %s: %w", keyAttr, err)
	}
	return items, nil
}

func (s *Store) scanReservations(ctx context.Context, filter models.ReservationFilter) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ReservationsTableName),
	}
	expr, names, values := reservationFilterExpression(filter, "")
	if expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	items, err := s.scanAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservations table: %w", err)
	}
	return items, nil
}

// reservationFilterExpression builds the filter for the fields not already
// used as the key condition.
func reservationFilterExpression(filter models.ReservationFilter, keyAttr string) (string, map[string]string, map[string]types.AttributeValue) {
	var conditions []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if filter.ListingId != "" && keyAttr != "listing_id" {
		conditions = append(conditions, "listing_id = :listing_id")
		values[":listing_id"] = &types.AttributeValueMemberS{Value: filter.ListingId}
	}
	if filter.Status != "" {
		conditions = append(conditions, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	if len(names) == 0 {
		names = nil
	}
	return strings.Join(conditions, " AND "), names, values
}
