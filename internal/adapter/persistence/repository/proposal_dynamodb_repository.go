package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProposalsTableName = "proposals"
	defaultCountersTableName  = "counters"
	proposalsCounterName      = "proposals"
)

type proposalItem struct {
	ID     int64  `dynamodbav:"id"`
	Status string `dynamodbav:"status"`

	CustomerName  string `dynamodbav:"customer_name"`
	CustomerCPF   string `dynamodbav:"customer_cpf"`
	CustomerEmail string `dynamodbav:"customer_email"`
	CustomerPhone string `dynamodbav:"customer_phone"`

	VehicleBrand string  `dynamodbav:"vehicle_brand"`
	VehicleModel string  `dynamodbav:"vehicle_model"`
	VehicleYear  int     `dynamodbav:"vehicle_year"`
	VehiclePlate string  `dynamodbav:"vehicle_plate"`
	FipeCode     string  `dynamodbav:"fipe_code,omitempty"`
	FipeValue    float64 `dynamodbav:"fipe_value"`

	FinancedValue    float64 `dynamodbav:"financed_value"`
	DownPaymentValue float64 `dynamodbav:"down_payment_value"`
	TermMonths       int     `dynamodbav:"term_months"`

	DealerID string `dynamodbav:"dealer_id,omitempty"`
	SellerID string `dynamodbav:"seller_id,omitempty"`
	Notes    string `dynamodbav:"notes"`

	Version     int64  `dynamodbav:"version"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	UpdatedAtNs int64  `dynamodbav:"updated_at_ns"`
}

// ProposalDynamoRepository persists Proposal entities and, in the same
// transaction, the events produced by each write.
//
// Table requirements:
//   - proposals: PK id (number)
//   - proposal_events: PK proposal_id (number), SK seq (number)
//   - counters: PK name (string); the "proposals" row holds the last issued id
type ProposalDynamoRepository struct {
	ddb           DynamoAPI
	tableName     string
	countersTable string
	events        *ProposalEventDynamoRepository
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb DynamoAPI, events *ProposalEventDynamoRepository) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("PROPOSALS_TABLE", defaultProposalsTableName),
		countersTable: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
		events:        events,
	}
}

// NextID atomically increments the proposals counter.
func (r *ProposalDynamoRepository) NextID(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"name": &types.AttributeValueMemberS{Value: proposalsCounterName},
		},
		UpdateExpression:         aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := attributevalue.Unmarshal(out.Attributes["value"], &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal, events []entities.ProposalEvent) error {
	put, err := r.putProposal(p, "attribute_not_exists(#id)", map[string]string{"#id": "id"}, nil)
	if err != nil {
		return err
	}
	return r.transact(ctx, p.ID, put, events)
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id int64) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: intToString(id)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

// List scans the table; the console works with a few thousand proposals at most.
func (r *ProposalDynamoRepository) List(ctx context.Context, filter interfaces.ProposalFilter) ([]entities.Proposal, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if filter.Status != "" {
		conds = append(conds, "#status = :status")
		names["#status"] = "status"
		values[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}
	if filter.DealerID != "" {
		conds = append(conds, "#dealer_id = :dealer_id")
		names["#dealer_id"] = "dealer_id"
		values[":dealer_id"] = &types.AttributeValueMemberS{Value: filter.DealerID}
	}
	if len(conds) > 0 {
		in.FilterExpression = aws.String(strings.Join(conds, " AND "))
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}

	var out []entities.Proposal
	pages := dynamodb.NewScanPaginator(r.ddb, in)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it proposalItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			out = append(out, fromProposalItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ProposalDynamoRepository) Update(ctx context.Context, p entities.Proposal, expectedVersion int64, events []entities.ProposalEvent) error {
	put, err := r.putProposal(p, "#version = :expected",
		map[string]string{"#version": "version"},
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: intToString(expectedVersion)},
		},
	)
	if err != nil {
		return err
	}
	return r.transact(ctx, p.ID, put, events)
}

// ApplySnapshot is a single conditional put: absent locally, or not newer than the incoming record.
func (r *ProposalDynamoRepository) ApplySnapshot(ctx context.Context, p entities.Proposal) (bool, error) {
	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return false, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id) OR #updated_at_ns <= :ts"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#updated_at_ns": "updated_at_ns",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ts": &types.AttributeValueMemberN{Value: intToString(p.UpdatedAt.UnixNano())},
		},
	})
	if err != nil {
		if conditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ProposalDynamoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: intToString(id)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	if len(out.Attributes) == 0 {
		return false, nil
	}
	if err := r.events.deleteAll(ctx, id); err != nil {
		logger.LogError("proposal", "Delete", "delete-events", map[string]any{"proposal_id": id}, err)
		return true, err
	}
	return true, nil
}

func (r *ProposalDynamoRepository) putProposal(p entities.Proposal, condition string, names map[string]string, values map[string]types.AttributeValue) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toProposalItem(p))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                 aws.String(r.tableName),
		Item:                      av,
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}, nil
}

// transact writes the proposal and its events atomically.
func (r *ProposalDynamoRepository) transact(ctx context.Context, id int64, put *types.Put, events []entities.ProposalEvent) error {
	items := []types.TransactWriteItem{{Put: put}}
	for _, ev := range events {
		evPut, err := r.events.put(ev)
		if err != nil {
			return err
		}
		items = append(items, types.TransactWriteItem{Put: evPut})
	}
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return asConflict(err, fmt.Sprintf("proposal %d", id))
}

func toProposalItem(p entities.Proposal) proposalItem {
	return proposalItem{
		ID:               p.ID,
		Status:           string(p.Status),
		CustomerName:     p.CustomerName,
		CustomerCPF:      p.CustomerCPF,
		CustomerEmail:    p.CustomerEmail,
		CustomerPhone:    p.CustomerPhone,
		VehicleBrand:     p.VehicleBrand,
		VehicleModel:     p.VehicleModel,
		VehicleYear:      p.VehicleYear,
		VehiclePlate:     p.VehiclePlate,
		FipeCode:         p.FipeCode,
		FipeValue:        p.FipeValue,
		FinancedValue:    p.FinancedValue,
		DownPaymentValue: p.DownPaymentValue,
		TermMonths:       p.TermMonths,
		DealerID:         derefString(p.DealerID),
		SellerID:         derefString(p.SellerID),
		Notes:            p.Notes,
		Version:          p.Version,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
		UpdatedAtNs:      p.UpdatedAt.UnixNano(),
	}
}

func fromProposalItem(it proposalItem) entities.Proposal {
	return entities.Proposal{
		ID:               it.ID,
		Status:           entities.ProposalStatus(it.Status),
		CustomerName:     it.CustomerName,
		CustomerCPF:      it.CustomerCPF,
		CustomerEmail:    it.CustomerEmail,
		CustomerPhone:    it.CustomerPhone,
		VehicleBrand:     it.VehicleBrand,
		VehicleModel:     it.VehicleModel,
		VehicleYear:      it.VehicleYear,
		VehiclePlate:     it.VehiclePlate,
		FipeCode:         it.FipeCode,
		FipeValue:        it.FipeValue,
		FinancedValue:    it.FinancedValue,
		DownPaymentValue: it.DownPaymentValue,
		TermMonths:       it.TermMonths,
		DealerID:         optionalString(it.DealerID),
		SellerID:         optionalString(it.SellerID),
		Notes:            it.Notes,
		Version:          it.Version,
		CreatedAt:        parseTime(it.CreatedAt),
		UpdatedAt:        parseTime(it.UpdatedAt),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
