package dynamodb

import (
	"context"
	"errors"
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

func testPayment(method models.PaymentMethod, status models.PaymentStatus) *models.Payment {
	return &models.Payment{
		ReservationId: "res-1",
		Id:            "pay-1",
		PayerId:       "user-1",
		Amount:        90000,
		Method:        method,
		Status:        status,
		PaidAt:        time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestRecordPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		payment := testPayment(models.MethodOrangeMoney, models.PaymentPaid)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			put := in.TransactItems[0].Put
			update := in.TransactItems[1].Update
			to := update.ExpressionAttributeValues[":to_status"].(*types.AttributeValueMemberS)
			from := update.ExpressionAttributeValues[":from_status"].(*types.AttributeValueMemberS)
			paidAt, ok := put.Item["paid_at"].(*types.AttributeValueMemberS)
			return ok && paidAt.Value == "2024-01-02T10:00:00.000000000Z" &&
				aws.ToString(put.ConditionExpression) == "attribute_not_exists(reservation_id)" &&
				aws.ToString(put.TableName) == "payments" &&
				to.Value == string(models.ReservationPaid) &&
				from.Value == string(models.ReservationPending)
		})).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		result, err := store.RecordPayment(context.Background(), payment, models.ReservationPending, models.ReservationPaid)

		require.NoError(t, err)
		assert.Equal(t, paymentsPartition, result.GSI1PK)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Payment", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(failedReason(nil), okReason()))

		_, err := store.RecordPayment(context.Background(), testPayment(models.MethodCash, models.PaymentPending), models.ReservationPending, models.ReservationPending)

		assert.ErrorIs(t, err, storage.ErrDuplicatePayment)
	})

	t.Run("Reservation Status Moved", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(okReason(), failedReason(nil)))

		_, err := store.RecordPayment(context.Background(), testPayment(models.MethodCard, models.PaymentPaid), models.ReservationPending, models.ReservationPaid)

		assert.ErrorIs(t, err, storage.ErrStatusConflict)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := store.RecordPayment(context.Background(), testPayment(models.MethodCard, models.PaymentPaid), models.ReservationPending, models.ReservationPaid)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute payment transaction")
	})
}

func TestSettlePayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		payment := testPayment(models.MethodCash, models.PaymentPending)

		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		settled, err := store.SettlePayment(context.Background(), payment, models.ReservationPending)

		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, settled.Status)
		assert.Equal(t, models.PaymentPending, payment.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Paid", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		old, err := attributevalue.MarshalMap(testPayment(models.MethodCash, models.PaymentPaid))
		require.NoError(t, err)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(failedReason(old), okReason()))

		_, err = store.SettlePayment(context.Background(), testPayment(models.MethodCash, models.PaymentPending), models.ReservationPending)

		assert.ErrorIs(t, err, storage.ErrStatusConflict)
	})

	t.Run("Payment Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(failedReason(nil), okReason()))

		_, err := store.SettlePayment(context.Background(), testPayment(models.MethodCash, models.PaymentPending), models.ReservationPending)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStampReceipt(t *testing.T) {
	t.Run("Stamped", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.UpdateItemOutput{}, nil)

		stamped, err := store.StampReceipt(context.Background(), "res-1", "RCT-20240102-abcdef12")

		require.NoError(t, err)
		assert.True(t, stamped)
	})

	t.Run("Already Stamped", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		old, _ := attributevalue.MarshalMap(testPayment(models.MethodCard, models.PaymentPaid))

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{Item: old})

		stamped, err := store.StampReceipt(context.Background(), "res-1", "RCT-20240102-abcdef12")

		assert.NoError(t, err)
		assert.False(t, stamped)
	})

	t.Run("Payment Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Once().Return(nil, &types.ConditionalCheckFailedException{})

		stamped, err := store.StampReceipt(context.Background(), "res-1", "RCT-20240102-abcdef12")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.False(t, stamped)
	})
}

func TestListSettledPayments(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := newTestStore(mockClient)
	av, _ := attributevalue.MarshalMap(testPayment(models.MethodCard, models.PaymentPaid))

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.ToString(in.IndexName) == paymentsByStatusGSI
	})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil)

	payments, err := store.ListSettledPayments(context.Background(), time.Minute)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "res-1", payments[0].ReservationId)
	mockClient.AssertExpectations(t)
}
