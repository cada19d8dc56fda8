package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// CreateUser creates a new user record in DynamoDB.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	userAV, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.UsersTableName),
		Item:                userAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing users.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return nil, fmt.Errorf("user %s: %w", user.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user in DynamoDB: %w", err)
	}

	return user, nil
}

// DeleteUser deletes a user record from DynamoDB.
func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": userID})
	if err != nil {
		return fmt.Errorf("failed to marshal user ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.UsersTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to delete user from DynamoDB: %w", err)
	}

	return nil
}

// GetUser retrieves a user from DynamoDB by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.UsersTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// ListUsers retrieves all users from DynamoDB.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.UsersTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users table: %w", err)
	}

	var users []models.User
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}

	return users, nil
}
