package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
	"github.com/chris/apartment-rentals/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateListing_InitialisesBookedRanges(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := newTestStore(mockClient)

	mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		ranges, ok := in.Item["booked_ranges"].(*types.AttributeValueMemberM)
		return ok && len(ranges.Value) == 0
	})).Once().Return(&dynamodb.PutItemOutput{}, nil)

	listing, err := store.CreateListing(context.Background(), &models.Listing{Id: "listing-1", Title: "Studio", Price: 90000, Available: true})

	require.NoError(t, err)
	assert.NotNil(t, listing.BookedRanges)
	mockClient.AssertExpectations(t)
}

func TestGetListing(t *testing.T) {
	t.Run("Consistent Read", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		av, err := attributevalue.MarshalMap(&models.Listing{Id: "listing-1", Price: 60000, BookingVersion: 7, BookedRanges: map[string]models.DateRange{}})
		require.NoError(t, err)

		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			return aws.ToBool(in.ConsistentRead)
		})).Once().Return(&dynamodb.GetItemOutput{Item: av}, nil)

		listing, err := store.GetListing(context.Background(), "listing-1")

		require.NoError(t, err)
		assert.Equal(t, int64(7), listing.BookingVersion)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetListing(context.Background(), "listing-1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListListings_BuildsFilter(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := newTestStore(mockClient)
	minPrice := int64(1000)
	available := true

	mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return aws.ToString(in.FilterExpression) == "city = :city AND price >= :min_price AND #available = :available" &&
			in.ExpressionAttributeNames["#available"] == "available"
	})).Once().Return(&dynamodb.ScanOutput{}, nil)

	listings, err := store.ListListings(context.Background(), models.ListingFilter{City: "Dakar", MinPrice: &minPrice, Available: &available})

	require.NoError(t, err)
	assert.Empty(t, listings)
	mockClient.AssertExpectations(t)
}

func TestUpdateListing_Missing(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := newTestStore(mockClient)

	mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

	_, err := store.UpdateListing(context.Background(), &models.Listing{Id: "listing-1"})

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func listingItem(t *testing.T, version int64, booked map[string]models.DateRange) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(&models.Listing{Id: "listing-1", BookingVersion: version, BookedRanges: booked})
	require.NoError(t, err)
	return av
}

func TestDeleteListing(t *testing.T) {
	finished := map[string]models.DateRange{
		"res-old": {Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: listingItem(t, 0, nil)}, nil)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.DeleteItemOutput{}, nil)

		assert.NoError(t, store.DeleteListing(context.Background(), "listing-1"))
	})

	t.Run("Only Finished Stays", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: listingItem(t, 4, finished)}, nil)
		mockClient.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
			version, ok := in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN)
			return ok && version.Value == "4" &&
				aws.ToString(in.ConditionExpression) == "attribute_exists(id) AND booking_version = :version"
		})).Once().Return(&dynamodb.DeleteItemOutput{}, nil)

		assert.NoError(t, store.DeleteListing(context.Background(), "listing-1"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Has Reservations", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		upcoming := map[string]models.DateRange{
			"res-1": {Start: time.Now().AddDate(0, 1, 0), End: time.Now().AddDate(0, 2, 0)},
		}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: listingItem(t, 2, upcoming)}, nil)

		err := store.DeleteListing(context.Background(), "listing-1")

		assert.ErrorIs(t, err, storage.ErrListingHasReservations)
		mockClient.AssertNotCalled(t, "DeleteItem", mock.Anything, mock.Anything)
	})

	t.Run("Booked Meanwhile", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: listingItem(t, 4, finished)}, nil)
		mockClient.On("DeleteItem", mock.Anything, mock.Anything).Once().
			Return(nil, &types.ConditionalCheckFailedException{Item: listingItem(t, 5, finished)})

		err := store.DeleteListing(context.Background(), "listing-1")

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})

	t.Run("Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{}, nil)

		err := store.DeleteListing(context.Background(), "listing-1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
