package repository

import (
	"context"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultContractsTableName = "contracts"
	contractsProposalIDIndex  = "proposal_id-index"
)

type installmentItem struct {
	Number  int     `dynamodbav:"number"`
	DueDate string  `dynamodbav:"due_date"`
	Amount  float64 `dynamodbav:"amount"`
	Paid    bool    `dynamodbav:"paid"`
	PaidAt  string  `dynamodbav:"paid_at,omitempty"`
}

type contractItem struct {
	ID            string `dynamodbav:"id"`
	ProposalID    int64  `dynamodbav:"proposal_id"`
	CustomerID    string `dynamodbav:"customer_id"`
	CustomerName  string `dynamodbav:"customer_name"`
	CustomerCPF   string `dynamodbav:"customer_cpf"`
	CustomerEmail string `dynamodbav:"customer_email"`
	CustomerPhone string `dynamodbav:"customer_phone"`

	StartDate          string  `dynamodbav:"start_date"`
	PaidAt             string  `dynamodbav:"paid_at,omitempty"`
	FinancedValue      float64 `dynamodbav:"financed_value"`
	InstallmentValue   float64 `dynamodbav:"installment_value"`
	InstallmentsTotal  int     `dynamodbav:"installments_total"`
	OutstandingBalance float64 `dynamodbav:"outstanding_balance"`
	RemainingBalance   float64 `dynamodbav:"remaining_balance"`
	Status             string  `dynamodbav:"status"`

	Installments []installmentItem `dynamodbav:"installments"`

	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// ContractDynamoRepository persists BillingContract with its schedule embedded,
// so an installment change and the re-derived status land in one conditional put.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: proposal_id-index (PK: proposal_id)
type ContractDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IContractRepository = (*ContractDynamoRepository)(nil)

func NewContractDynamoRepository(ddb DynamoAPI) *ContractDynamoRepository {
	return &ContractDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONTRACTS_TABLE", defaultContractsTableName),
	}
}

func (r *ContractDynamoRepository) Create(ctx context.Context, c entities.BillingContract) error {
	av, err := attributevalue.MarshalMap(toContractItem(c))
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
	return asConflict(err, "contract "+c.ID)
}

func (r *ContractDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillingContract, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillingContract{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillingContract{}, nil
	}

	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BillingContract{}, err
	}
	return fromContractItem(it), nil
}

func (r *ContractDynamoRepository) GetByProposalID(ctx context.Context, proposalID int64) (entities.BillingContract, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(contractsProposalIDIndex),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberN{Value: intToString(proposalID)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.BillingContract{}, err
	}
	if len(out.Items) == 0 {
		return entities.BillingContract{}, nil
	}
	var it contractItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.BillingContract{}, err
	}
	return fromContractItem(it), nil
}

func (r *ContractDynamoRepository) List(ctx context.Context) ([]entities.BillingContract, error) {
	var out []entities.BillingContract
	pages := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it contractItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			out = append(out, fromContractItem(it))
		}
	}
	return out, nil
}

func (r *ContractDynamoRepository) Update(ctx context.Context, c entities.BillingContract, expectedVersion int64) error {
	av, err := attributevalue.MarshalMap(toContractItem(c))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: intToString(expectedVersion)},
		},
	})
	return asConflict(err, "contract "+c.ID)
}

func toContractItem(c entities.BillingContract) contractItem {
	ins := make([]installmentItem, 0, len(c.Installments))
	for _, in := range c.Installments {
		ins = append(ins, installmentItem{
			Number:  in.Number,
			DueDate: formatTime(in.DueDate),
			Amount:  in.Amount,
			Paid:    in.Paid,
			PaidAt:  formatTimePtr(in.PaidAt),
		})
	}
	return contractItem{
		ID:                 c.ID,
		ProposalID:         c.ProposalID,
		CustomerID:         c.CustomerID,
		CustomerName:       c.Customer.Name,
		CustomerCPF:        c.Customer.CPF,
		CustomerEmail:      c.Customer.Email,
		CustomerPhone:      c.Customer.Phone,
		StartDate:          formatTime(c.StartDate),
		PaidAt:             formatTimePtr(c.PaidAt),
		FinancedValue:      c.FinancedValue,
		InstallmentValue:   c.InstallmentValue,
		InstallmentsTotal:  c.InstallmentsTotal,
		OutstandingBalance: c.OutstandingBalance,
		RemainingBalance:   c.RemainingBalance,
		Status:             string(c.Status),
		Installments:       ins,
		Version:            c.Version,
		CreatedAt:          formatTime(c.CreatedAt),
		UpdatedAt:          formatTime(c.UpdatedAt),
	}
}

func fromContractItem(it contractItem) entities.BillingContract {
	ins := make([]entities.Installment, 0, len(it.Installments))
	for _, in := range it.Installments {
		ins = append(ins, entities.Installment{
			Number:  in.Number,
			DueDate: parseTime(in.DueDate),
			Amount:  in.Amount,
			Paid:    in.Paid,
			PaidAt:  parseTimePtr(in.PaidAt),
		})
	}
	return entities.BillingContract{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		CustomerID: it.CustomerID,
		Customer: entities.Customer{
			ID:    it.CustomerID,
			Name:  it.CustomerName,
			CPF:   it.CustomerCPF,
			Email: it.CustomerEmail,
			Phone: it.CustomerPhone,
		},
		StartDate:          parseTime(it.StartDate),
		PaidAt:             parseTimePtr(it.PaidAt),
		FinancedValue:      it.FinancedValue,
		InstallmentValue:   it.InstallmentValue,
		InstallmentsTotal:  it.InstallmentsTotal,
		OutstandingBalance: it.OutstandingBalance,
		RemainingBalance:   it.RemainingBalance,
		Status:             entities.BillingStatus(it.Status),
		Installments:       ins,
		Version:            it.Version,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
}
