package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/ledger"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// DynamoDBService persists certificates. The table is keyed by
// certificateId with a GSI on volunteerId for per-user listing.
type DynamoDBService struct {
	client                *dynamodb.Client
	certificatesTableName string
	volunteerIndexName    string
}

// NewDynamoDBService creates a new DynamoDBService.
func NewDynamoDBService(client *dynamodb.Client, certificatesTableName, volunteerIndexName string) *DynamoDBService {
	return &DynamoDBService{
		client:                client,
		certificatesTableName: certificatesTableName,
		volunteerIndexName:    volunteerIndexName,
	}
}

// SaveCertificate writes the certificate unconditionally. Used for status
// updates after the record already exists, and for failed drafts kept for
// audit.
func (ddb *DynamoDBService) SaveCertificate(ctx context.Context, cert *models.Certificate) error {
	item, err := attributevalue.MarshalMap(cert)
	if err != nil {
		return fmt.Errorf("failed to marshal certificate: %w", err)
	}

	_, err = ddb.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ddb.certificatesTableName),
		Item:      item,
	})

	if err != nil {
		return fmt.Errorf("failed to save certificate: %w", err)
	}

	log.Printf("✅ Certificate saved: %s", cert.CertificateID)
	return nil
}

// PutCertificateIfAbsent writes the certificate only when no record with the
// same certificateId exists, returning ledger.ErrAlreadyExists otherwise.
// This is the atomic insert-if-absent a ledger write needs.
func (ddb *DynamoDBService) PutCertificateIfAbsent(ctx context.Context, cert *models.Certificate) error {
	item, err := attributevalue.MarshalMap(cert)
	if err != nil {
		return fmt.Errorf("failed to marshal certificate: %w", err)
	}

	_, err = ddb.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(ddb.certificatesTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(certificateId)"),
	})

	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ledger.ErrAlreadyExists
		}
		return fmt.Errorf("failed to write certificate: %w", err)
	}

	log.Printf("✅ Certificate recorded: %s", cert.CertificateID)
	return nil
}

// GetCertificate returns a certificate by ID, or (nil, nil) when absent.
func (ddb *DynamoDBService) GetCertificate(ctx context.Context, certificateID string) (*models.Certificate, error) {
	key := map[string]types.AttributeValue{
		"certificateId": &types.AttributeValueMemberS{Value: certificateID},
	}

	result, err := ddb.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ddb.certificatesTableName),
		Key:       key,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var cert models.Certificate
	err = attributevalue.UnmarshalMap(result.Item, &cert)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificate: %w", err)
	}

	return &cert, nil
}

// ListCertificatesByVolunteer queries the volunteer GSI for all certificates
// of one volunteer.
func (ddb *DynamoDBService) ListCertificatesByVolunteer(ctx context.Context, volunteerID string) ([]models.Certificate, error) {
	result, err := ddb.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(ddb.certificatesTableName),
		IndexName:              aws.String(ddb.volunteerIndexName),
		KeyConditionExpression: aws.String("volunteerId = :volunteerId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":volunteerId": &types.AttributeValueMemberS{Value: volunteerID},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}

	var certs []models.Certificate
	err = attributevalue.UnmarshalListOfMaps(result.Items, &certs)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}

// IncrementDownloadCount bumps downloadCount atomically for an existing
// certificate.
func (ddb *DynamoDBService) IncrementDownloadCount(ctx context.Context, certificateID string) error {
	key := map[string]types.AttributeValue{
		"certificateId": &types.AttributeValueMemberS{Value: certificateID},
	}

	_, err := ddb.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(ddb.certificatesTableName),
		Key:                 key,
		UpdateExpression:    aws.String("ADD downloadCount :inc"),
		ConditionExpression: aws.String("attribute_exists(certificateId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inc": &types.AttributeValueMemberN{Value: "1"},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}

	return nil
}
