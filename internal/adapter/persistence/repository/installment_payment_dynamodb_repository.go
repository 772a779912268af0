package repository

import (
	"context"
	"sort"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInstallmentPaymentsTableName = "installment_payments"
	paymentsContractIDIndex             = "contract_id-index"
)

type installmentPaymentItem struct {
	ID                string                 `dynamodbav:"id"`
	ContractID        string                 `dynamodbav:"contract_id"`
	InstallmentNumber int                    `dynamodbav:"installment_number"`
	Amount            float64                `dynamodbav:"amount"`
	Date              string                 `dynamodbav:"date"`
	Status            string                 `dynamodbav:"status"`
	MPPayload         map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw      string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// InstallmentPaymentDynamoRepository persists InstallmentPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: contract_id-index (PK: contract_id)
type InstallmentPaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IInstallmentPaymentRepository = (*InstallmentPaymentDynamoRepository)(nil)

func NewInstallmentPaymentDynamoRepository(ddb DynamoAPI) *InstallmentPaymentDynamoRepository {
	return &InstallmentPaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INSTALLMENT_PAYMENTS_TABLE", defaultInstallmentPaymentsTableName),
	}
}

func (r *InstallmentPaymentDynamoRepository) Create(ctx context.Context, p entities.InstallmentPayment) error {
	av, err := attributevalue.MarshalMap(toInstallmentPaymentItem(p))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return asConflict(err, "payment "+p.ID)
}

func (r *InstallmentPaymentDynamoRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.InstallmentPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsContractIDIndex),
		KeyConditionExpression: aws.String("contract_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: contractID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.InstallmentPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it installmentPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromInstallmentPaymentItem(it))
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toInstallmentPaymentItem(p entities.InstallmentPayment) installmentPaymentItem {
	return installmentPaymentItem{
		ID:                p.ID,
		ContractID:        p.ContractID,
		InstallmentNumber: p.InstallmentNumber,
		Amount:            p.Amount,
		Date:              formatTime(p.Date),
		Status:            string(p.Status),
		MPPayload:         p.MPPayload,
		MPPayloadRaw:      string(p.MPPayloadRaw),
	}
}

func fromInstallmentPaymentItem(it installmentPaymentItem) entities.InstallmentPayment {
	return entities.InstallmentPayment{
		ID:                it.ID,
		ContractID:        it.ContractID,
		InstallmentNumber: it.InstallmentNumber,
		Amount:            it.Amount,
		Date:              parseTime(it.Date),
		Status:            entities.PaymentStatus(it.Status),
		MPPayload:         it.MPPayload,
		MPPayloadRaw:      []byte(it.MPPayloadRaw),
	}
}
