package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// CreateListing creates a new listing record in DynamoDB.
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if listing.BookedRanges == nil {
		listing.BookedRanges = map[string]models.DateRange{}
	}

	listingAV, err := attributevalue.MarshalMap(listing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.ListingsTableName),
		Item:                listingAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return nil, fmt.Errorf("listing %s: %w", listing.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create listing in DynamoDB: %w", err)
	}

	return listing, nil
}

// GetListing retrieves a listing with a consistent read so the booking version
// and booked ranges reflect every committed reservation.
func (s *Store) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.ListingsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, storage.ErrNotFound)
	}

	var listing models.Listing
	if err := attributevalue.UnmarshalMap(result.Item, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	return &listing, nil
}

// ListListings scans the listings table, applying filter server side.
func (s *Store) ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ListingsTableName),
	}

	var conditions []string
	values := map[string]types.AttributeValue{}
	names := map[string]string{}
	if filter.City != "" {
		conditions = append(conditions, "city = :city")
		values[":city"] = &types.AttributeValueMemberS{Value: filter.City}
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "price >= :min_price")
		values[":min_price"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *filter.MinPrice)}
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price <= :max_price")
		values[":max_price"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *filter.MaxPrice)}
	}
	if filter.Available != nil {
		conditions = append(conditions, "#available = :available")
		names["#available"] = "available"
		values[":available"] = &types.AttributeValueMemberBOOL{Value: *filter.Available}
	}
	if len(conditions) > 0 {
		input.FilterExpression = aws.String(strings.Join(conditions, " AND "))
		input.ExpressionAttributeValues = values
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	items, err := s.scanAll(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan listings table: %w", err)
	}

	var listings []models.Listing
	if err := attributevalue.UnmarshalListOfMaps(items, &listings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings: %w", err)
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})

	return listings, nil
}

// UpdateListing writes the mutable fields of a listing. Booking state is left
// to the reservation transactions.
func (s *Store) UpdateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.ListingsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: listing.Id},
		},
		UpdateExpression:    aws.String("SET title = :title, description = :description, price = :price, city = :city, address = :address, #available = :available, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#available": "available",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title":       &types.AttributeValueMemberS{Value: listing.Title},
			":description": &types.AttributeValueMemberS{Value: listing.Description},
			":price":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", listing.Price)},
			":city":        &types.AttributeValueMemberS{Value: listing.City},
			":address":     &types.AttributeValueMemberS{Value: listing.Address},
			":available":   &types.AttributeValueMemberBOOL{Value: listing.Available},
			":now":         nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return nil, fmt.Errorf("listing %s: %w", listing.Id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	var updated models.Listing
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated listing: %w", err)
	}

	return &updated, nil
}

// DeleteListing deletes a listing whose booked ranges have all ended. The
// delete is conditioned on the booking version that was checked, so a
// reservation slipping in between fails it with ErrVersionConflict.
func (s *Store) DeleteListing(ctx context.Context, listingID string) error {
	listing, err := s.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.HasActiveRanges(time.Now()) {
		return fmt.Errorf("listing %s: %w", listingID, storage.ErrListingHasReservations)
	}

	key, err := attributevalue.MarshalMap(map[string]string{"id": listingID})
	if err != nil {
		return fmt.Errorf("failed to marshal listing ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.ListingsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id) AND booking_version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", listing.BookingVersion)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		if ccf, ok := isConditionalCheckFailed(err); ok {
			if ccf.Item == nil {
				return fmt.Errorf("listing %s: %w", listingID, storage.ErrNotFound)
			}
			return fmt.Errorf("listing %s: %w", listingID, storage.ErrVersionConflict)
		}
		return fmt.Errorf("failed to delete listing from DynamoDB: %w", err)
	}

	return nil
}
