package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"grota_financiamento/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records inputs and answers with the configured outputs.
// Methods that are not configured panic through the nil embedded interface.
type fakeDynamo struct {
	DynamoAPI

	putInputs      []*dynamodb.PutItemInput
	putErr         error
	getOut         *dynamodb.GetItemOutput
	queryOut       *dynamodb.QueryOutput
	queryInputs    []*dynamodb.QueryInput
	updateOut      *dynamodb.UpdateItemOutput
	transactInputs []*dynamodb.TransactWriteItemsInput
	transactErr    error
	deleteOut      *dynamodb.DeleteItemOutput
	batchInputs    []*dynamodb.BatchWriteItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getOut == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getOut, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, in)
	if f.queryOut == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryOut, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, _ *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return f.updateOut, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transactInputs = append(f.transactInputs, in)
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, _ *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteOut == nil {
		return &dynamodb.DeleteItemOutput{}, nil
	}
	return f.deleteOut, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchInputs = append(f.batchInputs, in)
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func conditionalCheckFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func TestAsConflict(t *testing.T) {
	assert.NoError(t, asConflict(nil, "x"))

	plain := errors.New("boom")
	assert.Same(t, plain, asConflict(plain, "x"))

	err := asConflict(conditionalCheckFailed(), "proposal 1")
	assert.ErrorIs(t, err, entities.ErrConflict)
	assert.Contains(t, err.Error(), "proposal 1")

	cancelled := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("None")}, {Code: aws.String("ConditionalCheckFailed")}},
	}
	assert.ErrorIs(t, asConflict(cancelled, "proposal 1"), entities.ErrConflict)

	other := &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("ThrottlingError")}},
	}
	assert.NotErrorIs(t, asConflict(other, "proposal 1"), entities.ErrConflict)
}

func TestTimeHelpers(t *testing.T) {
	assert.Equal(t, "", formatTime(time.Time{}))
	assert.True(t, parseTime("").IsZero())
	assert.Nil(t, parseTimePtr(""))
	assert.Equal(t, "", formatTimePtr(nil))

	at := time.Date(2024, 3, 1, 12, 30, 0, 123, time.UTC)
	assert.True(t, at.Equal(parseTime(formatTime(at))))
	assert.True(t, at.Equal(*parseTimePtr(formatTimePtr(&at))))
}

func TestProposalDynamoRepository_NextID(t *testing.T) {
	ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{"value": &types.AttributeValueMemberN{Value: "42"}},
	}}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	id, err := repo.NextID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestProposalDynamoRepository_UpdateWritesEventsInOneTransaction(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := entities.Proposal{ID: 7, Status: entities.ProposalStatusApproved, Version: 3, CreatedAt: now, UpdatedAt: now}
	ev := entities.ProposalEvent{ID: "e1", ProposalID: 7, Seq: 2, Type: entities.ProposalEventStatusUpdated, CreatedAt: now}

	require.NoError(t, repo.Update(context.Background(), p, 2, []entities.ProposalEvent{ev}))
	require.Len(t, ddb.transactInputs, 1)

	items := ddb.transactInputs[0].TransactItems
	require.Len(t, items, 2)
	assert.Contains(t, aws.ToString(items[0].Put.ConditionExpression), "#version = :expected")
	assert.Equal(t, "2", items[0].Put.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
	assert.Equal(t, "attribute_not_exists(#seq)", aws.ToString(items[1].Put.ConditionExpression))
}

func TestProposalDynamoRepository_UpdateConflict(t *testing.T) {
	ddb := &fakeDynamo{transactErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: aws.String("ConditionalCheckFailed")}},
	}}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	err := repo.Update(context.Background(), entities.Proposal{ID: 7, Version: 2}, 1, nil)
	assert.ErrorIs(t, err, entities.ErrConflict)
}

func TestProposalDynamoRepository_GetByIDMissingReturnsZero(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	p, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, p.ID)
}

func TestProposalDynamoRepository_GetByIDMapsItem(t *testing.T) {
	dealer := "d-1"
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	av, err := attributevalue.MarshalMap(toProposalItem(entities.Proposal{
		ID:            5,
		Status:        entities.ProposalStatusPending,
		CustomerName:  "Maria",
		FinancedValue: 50000,
		TermMonths:    48,
		DealerID:      &dealer,
		Version:       4,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
	require.NoError(t, err)

	ddb := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: av}}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	p, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, entities.ProposalStatusPending, p.Status)
	assert.Equal(t, "Maria", p.CustomerName)
	require.NotNil(t, p.DealerID)
	assert.Equal(t, "d-1", *p.DealerID)
	assert.Nil(t, p.SellerID)
	assert.True(t, now.Equal(p.UpdatedAt))
	assert.Equal(t, int64(4), p.Version)
}

func TestProposalDynamoRepository_ApplySnapshot(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))
	p := entities.Proposal{ID: 1, UpdatedAt: time.Unix(0, 1000)}

	applied, err := repo.ApplySnapshot(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "1000", ddb.putInputs[0].ExpressionAttributeValues[":ts"].(*types.AttributeValueMemberN).Value)

	ddb.putErr = conditionalCheckFailed()
	applied, err = repo.ApplySnapshot(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, applied)

	ddb.putErr = errors.New("network")
	_, err = repo.ApplySnapshot(context.Background(), p)
	assert.Error(t, err)
}

func TestProposalDynamoRepository_DeleteRemovesEvents(t *testing.T) {
	evAV, err := attributevalue.MarshalMap(proposalEventItem{ProposalID: 3, Seq: 1})
	require.NoError(t, err)

	ddb := &fakeDynamo{
		deleteOut: &dynamodb.DeleteItemOutput{Attributes: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: "3"},
		}},
		queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{evAV}},
	}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	deleted, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, deleted)
	require.Len(t, ddb.batchInputs, 1)
}

func TestProposalDynamoRepository_DeleteMissing(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewProposalDynamoRepository(ddb, NewProposalEventDynamoRepository(ddb))

	deleted, err := repo.Delete(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, ddb.batchInputs)
}

func TestContractDynamoRepository_RoundTripsInstallments(t *testing.T) {
	due := time.Date(2024, 2, 10, 3, 0, 0, 0, time.UTC)
	paidAt := time.Date(2024, 2, 9, 15, 0, 0, 0, time.UTC)
	c := entities.BillingContract{
		ID:         "ctr-1",
		ProposalID: 9,
		CustomerID: "cus-1",
		Customer:   entities.Customer{ID: "cus-1", Name: "Maria", Email: "m@x.com"},
		Status:     entities.BillingStatusEmAberto,
		Installments: []entities.Installment{
			{Number: 1, DueDate: due, Amount: 500, Paid: true, PaidAt: &paidAt},
			{Number: 2, DueDate: due.AddDate(0, 1, 0), Amount: 500},
		},
		Version: 1,
	}

	ddb := &fakeDynamo{}
	repo := NewContractDynamoRepository(ddb)
	require.NoError(t, repo.Create(context.Background(), c))
	require.Len(t, ddb.putInputs, 1)
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(ddb.putInputs[0].ConditionExpression))

	ddb.getOut = &dynamodb.GetItemOutput{Item: ddb.putInputs[0].Item}
	got, err := repo.GetByID(context.Background(), "ctr-1")
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.Customer.Name)
	require.Len(t, got.Installments, 2)
	assert.True(t, got.Installments[0].Paid)
	require.NotNil(t, got.Installments[0].PaidAt)
	assert.True(t, paidAt.Equal(*got.Installments[0].PaidAt))
	assert.Nil(t, got.Installments[1].PaidAt)
	assert.True(t, due.Equal(got.Installments[0].DueDate))
}

func TestContractDynamoRepository_UpdateConflict(t *testing.T) {
	ddb := &fakeDynamo{putErr: conditionalCheckFailed()}
	repo := NewContractDynamoRepository(ddb)

	err := repo.Update(context.Background(), entities.BillingContract{ID: "ctr-1", Version: 3}, 2)
	assert.ErrorIs(t, err, entities.ErrConflict)
	assert.Equal(t, "2", ddb.putInputs[0].ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value)
}

func TestContractDynamoRepository_GetByProposalIDUsesIndex(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewContractDynamoRepository(ddb)

	got, err := repo.GetByProposalID(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	require.Len(t, ddb.queryInputs, 1)
	assert.Equal(t, contractsProposalIDIndex, aws.ToString(ddb.queryInputs[0].IndexName))
}

func TestOccurrenceDynamoRepository_ListNewestFirst(t *testing.T) {
	older, err := attributevalue.MarshalMap(occurrenceItem{ID: "o1", ContractID: "ctr-1", CreatedAt: "2024-03-01T10:00:00Z"})
	require.NoError(t, err)
	newer, err := attributevalue.MarshalMap(occurrenceItem{ID: "o2", ContractID: "ctr-1", CreatedAt: "2024-03-02T10:00:00Z"})
	require.NoError(t, err)

	ddb := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{older, newer}}}
	repo := NewOccurrenceDynamoRepository(ddb)

	got, err := repo.ListByContractID(context.Background(), "ctr-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "o2", got[0].ID)
	assert.Equal(t, "o1", got[1].ID)
}

func TestInstallmentPaymentDynamoRepository_CreateDuplicate(t *testing.T) {
	ddb := &fakeDynamo{putErr: conditionalCheckFailed()}
	repo := NewInstallmentPaymentDynamoRepository(ddb)

	err := repo.Create(context.Background(), entities.InstallmentPayment{ID: "mp-1"})
	assert.ErrorIs(t, err, entities.ErrConflict)
}

func TestInstallmentPaymentDynamoRepository_ListMapsPayload(t *testing.T) {
	av, err := attributevalue.MarshalMap(toInstallmentPaymentItem(entities.InstallmentPayment{
		ID:                "mp-1",
		ContractID:        "ctr-1",
		InstallmentNumber: 2,
		Amount:            500,
		Date:              time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:            entities.PaymentStatusAprovado,
		MPPayload:         map[string]interface{}{"status": "approved"},
		MPPayloadRaw:      []byte(`{"status":"approved"}`),
	}))
	require.NoError(t, err)

	ddb := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}}
	repo := NewInstallmentPaymentDynamoRepository(ddb)

	got, err := repo.ListByContractID(context.Background(), "ctr-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entities.PaymentStatusAprovado, got[0].Status)
	assert.Equal(t, 2, got[0].InstallmentNumber)
	assert.Equal(t, "approved", got[0].MPPayload["status"])
	assert.JSONEq(t, `{"status":"approved"}`, string(got[0].MPPayloadRaw))
}
