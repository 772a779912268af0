package repository

import (
	"context"
	"fmt"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProposalEventsTableName = "proposal_events"

type proposalEventItem struct {
	ProposalID int64  `dynamodbav:"proposal_id"`
	Seq        int64  `dynamodbav:"seq"`
	ID         string `dynamodbav:"id"`
	Type       string `dynamodbav:"type"`
	StatusFrom string `dynamodbav:"status_from,omitempty"`
	StatusTo   string `dynamodbav:"status_to,omitempty"`
	Actor      string `dynamodbav:"actor"`
	Note       string `dynamodbav:"note,omitempty"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// ProposalEventDynamoRepository is the append-only timeline store.
//
// Table requirements:
//   - PK: proposal_id (number)
//   - SK: seq (number)
//
// (proposal_id, seq) uniqueness is what rejects a second writer that read the same last event.
type ProposalEventDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProposalEventRepository = (*ProposalEventDynamoRepository)(nil)

func NewProposalEventDynamoRepository(ddb DynamoAPI) *ProposalEventDynamoRepository {
	return &ProposalEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPOSAL_EVENTS_TABLE", defaultProposalEventsTableName),
	}
}

func (r *ProposalEventDynamoRepository) Append(ctx context.Context, ev entities.ProposalEvent) error {
	put, err := r.put(ev)
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                put.TableName,
		Item:                     put.Item,
		ConditionExpression:      put.ConditionExpression,
		ExpressionAttributeNames: put.ExpressionAttributeNames,
	})
	return asConflict(err, fmt.Sprintf("event %d of proposal %d", ev.Seq, ev.ProposalID))
}

func (r *ProposalEventDynamoRepository) ListByProposalID(ctx context.Context, proposalID int64) ([]entities.ProposalEvent, error) {
	var out []entities.ProposalEvent
	pages := dynamodb.NewQueryPaginator(r.ddb, r.query(proposalID))
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it proposalEventItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			out = append(out, fromProposalEventItem(it))
		}
	}
	return out, nil
}

func (r *ProposalEventDynamoRepository) Last(ctx context.Context, proposalID int64) (entities.ProposalEvent, error) {
	in := r.query(proposalID)
	in.ScanIndexForward = aws.Bool(false)
	in.Limit = aws.Int32(1)
	in.ConsistentRead = aws.Bool(true)

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return entities.ProposalEvent{}, err
	}
	if len(out.Items) == 0 {
		return entities.ProposalEvent{}, nil
	}
	var it proposalEventItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.ProposalEvent{}, err
	}
	return fromProposalEventItem(it), nil
}

func (r *ProposalEventDynamoRepository) query(proposalID int64) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberN{Value: intToString(proposalID)},
		},
	}
}

// put builds the conditional write shared by Append and the proposal transactions.
func (r *ProposalEventDynamoRepository) put(ev entities.ProposalEvent) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toProposalEventItem(ev))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#seq)"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
	}, nil
}

// deleteAll removes the timeline of a deleted proposal in batches.
func (r *ProposalEventDynamoRepository) deleteAll(ctx context.Context, proposalID int64) error {
	events, err := r.ListByProposalID(ctx, proposalID)
	if err != nil {
		return err
	}
	for start := 0; start < len(events); start += batchWriteLimit {
		end := start + batchWriteLimit
		if end > len(events) {
			end = len(events)
		}
		reqs := make([]types.WriteRequest, 0, end-start)
		for _, ev := range events[start:end] {
			reqs = append(reqs, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"proposal_id": &types.AttributeValueMemberN{Value: intToString(proposalID)},
					"seq":         &types.AttributeValueMemberN{Value: intToString(ev.Seq)},
				},
			}})
		}
		pending := map[string][]types.WriteRequest{r.tableName: reqs}
		for len(pending) > 0 {
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func toProposalEventItem(ev entities.ProposalEvent) proposalEventItem {
	it := proposalEventItem{
		ProposalID: ev.ProposalID,
		Seq:        ev.Seq,
		ID:         ev.ID,
		Type:       string(ev.Type),
		Actor:      ev.Actor,
		Note:       ev.Note,
		CreatedAt:  formatTime(ev.CreatedAt),
	}
	if ev.StatusFrom != nil {
		it.StatusFrom = string(*ev.StatusFrom)
	}
	if ev.StatusTo != nil {
		it.StatusTo = string(*ev.StatusTo)
	}
	return it
}

func fromProposalEventItem(it proposalEventItem) entities.ProposalEvent {
	ev := entities.ProposalEvent{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		Seq:        it.Seq,
		Type:       entities.ProposalEventType(it.Type),
		Actor:      it.Actor,
		Note:       it.Note,
		CreatedAt:  parseTime(it.CreatedAt),
	}
	if it.StatusFrom != "" {
		ev.StatusFrom = entities.StatusPtr(entities.ProposalStatus(it.StatusFrom))
	}
	if it.StatusTo != "" {
		ev.StatusTo = entities.StatusPtr(entities.ProposalStatus(it.StatusTo))
	}
	return ev
}
