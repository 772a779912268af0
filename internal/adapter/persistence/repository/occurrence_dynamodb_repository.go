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
	defaultOccurrencesTableName = "occurrences"
	occurrencesContractIDIndex  = "contract_id-index"
)

type occurrenceItem struct {
	ID         string `dynamodbav:"id"`
	ContractID string `dynamodbav:"contract_id"`
	Date       string `dynamodbav:"date"`
	Contact    string `dynamodbav:"contact"`
	Note       string `dynamodbav:"note"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// OccurrenceDynamoRepository persists the collections contact log.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: contract_id-index (PK: contract_id)
type OccurrenceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOccurrenceRepository = (*OccurrenceDynamoRepository)(nil)

func NewOccurrenceDynamoRepository(ddb DynamoAPI) *OccurrenceDynamoRepository {
	return &OccurrenceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("OCCURRENCES_TABLE", defaultOccurrencesTableName),
	}
}

func (r *OccurrenceDynamoRepository) Create(ctx context.Context, o entities.Occurrence) error {
	av, err := attributevalue.MarshalMap(occurrenceItem{
		ID:         o.ID,
		ContractID: o.ContractID,
		Date:       formatTime(o.Date),
		Contact:    o.Contact,
		Note:       o.Note,
		CreatedAt:  formatTime(o.CreatedAt),
	})
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
	return asConflict(err, "occurrence "+o.ID)
}

func (r *OccurrenceDynamoRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.Occurrence, error) {
	var out []entities.Occurrence
	pages := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(occurrencesContractIDIndex),
		KeyConditionExpression: aws.String("contract_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: contractID},
		},
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it occurrenceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			out = append(out, entities.Occurrence{
				ID:         it.ID,
				ContractID: it.ContractID,
				Date:       parseTime(it.Date),
				Contact:    it.Contact,
				Note:       it.Note,
				CreatedAt:  parseTime(it.CreatedAt),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
