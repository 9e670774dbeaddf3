package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mehdislim/carnet/internal/client"
)

const collectionName = "clients"

type Store struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique phone index. Phone uniqueness is enforced
// by the store rather than by an application-level lookup, so concurrent
// creates cannot slip past the check.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating phone index: %w", err)
	}

	return nil
}

// clientDoc is the persisted shape of a client. Kept separate from the
// domain type so bson concerns stay inside this package.
type clientDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Phone     string        `bson:"phone"`
	Deposit   float64       `bson:"deposit"`
	TotalDebt float64       `bson:"totalDebt"`
	Debts     []debtDoc     `bson:"debts"`
}

type debtDoc struct {
	ID          string    `bson:"id"`
	Amount      float64   `bson:"amount"`
	ProductName string    `bson:"productName"`
	Date        time.Time `bson:"date"`
	Paid        bool      `bson:"paid"`
}

func toDebtDoc(d client.Debt) debtDoc {
	return debtDoc{
		ID:          d.ID,
		Amount:      d.Amount,
		ProductName: d.ProductName,
		Date:        d.Date,
		Paid:        d.Paid,
	}
}

func toDoc(c *client.Client) *clientDoc {
	doc := &clientDoc{
		Name:      c.Name,
		Phone:     c.Phone,
		Deposit:   c.Deposit,
		TotalDebt: c.TotalDebt,
		// Always store an array, never null.
		Debts: make([]debtDoc, 0, len(c.Debts)),
	}

	for _, d := range c.Debts {
		doc.Debts = append(doc.Debts, toDebtDoc(d))
	}

	return doc
}

func fromDoc(doc *clientDoc) *client.Client {
	c := &client.Client{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Phone:     doc.Phone,
		Deposit:   doc.Deposit,
		TotalDebt: doc.TotalDebt,
		Debts:     make([]client.Debt, 0, len(doc.Debts)),
	}

	for _, d := range doc.Debts {
		c.Debts = append(c.Debts, client.Debt{
			ID:          d.ID,
			Amount:      d.Amount,
			ProductName: d.ProductName,
			Date:        d.Date,
			Paid:        d.Paid,
		})
	}

	return c
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding clients: %w", err)
	}

	clients := make([]*client.Client, len(docs))
	for i := range docs {
		clients[i] = fromDoc(&docs[i])
	}

	return clients, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	doc := toDoc(c)
	doc.ID = bson.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return client.ErrPhoneTaken
		}

		return fmt.Errorf("creating client: %w", err)
	}

	c.ID = doc.ID.Hex()

	return nil
}

// AppendDebt pushes the entry and grows totalDebt in a single update, so no
// read-modify-write window exists between the two.
func (s *Store) AppendDebt(ctx context.Context, clientID string, d client.Debt) (*client.Client, error) {
	oid, err := bson.ObjectIDFromHex(clientID)
	if err != nil {
		// A malformed id identifies no client.
		return nil, client.ErrNotFound
	}

	update := bson.M{
		"$push": bson.M{"debts": toDebtDoc(d)},
		"$inc":  bson.M{"totalDebt": d.Amount},
	}

	var doc clientDoc

	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("appending debt: %w", err)
	}

	return fromDoc(&doc), nil
}

// MarkDebtPaid flips the entry's paid flag and recomputes totalDebt from the
// unpaid entries that remain, in one atomic pipeline update. Recomputing
// rather than subtracting keeps the total consistent even if entries were
// mutated through another path, and makes repeated calls a no-op.
func (s *Store) MarkDebtPaid(ctx context.Context, clientID, debtID string) (*client.Client, error) {
	oid, err := bson.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, client.ErrNotFound
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"debts": bson.M{"$map": bson.M{
				"input": "$debts",
				"as":    "d",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$d.id", debtID}},
					bson.M{"$mergeObjects": bson.A{"$$d", bson.M{"paid": true}}},
					"$$d",
				}},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"totalDebt": bson.M{"$sum": bson.M{"$map": bson.M{
				"input": bson.M{"$filter": bson.M{
					"input": "$debts",
					"as":    "d",
					"cond":  bson.M{"$eq": bson.A{"$$d.paid", false}},
				}},
				"as": "d",
				"in": "$$d.amount",
			}}},
		}}},
	}

	filter := bson.M{"_id": oid, "debts.id": debtID}

	var doc clientDoc

	err = s.coll.FindOneAndUpdate(ctx, filter, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err == nil {
		return fromDoc(&doc), nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("paying debt: %w", err)
	}

	// No match. Tell a missing client apart from a missing entry.
	ferr := s.coll.FindOne(ctx, bson.M{"_id": oid}).Err()
	switch {
	case ferr == nil:
		return nil, client.ErrDebtNotFound
	case errors.Is(ferr, mongo.ErrNoDocuments):
		return nil, client.ErrNotFound
	default:
		return nil, fmt.Errorf("paying debt: %w", ferr)
	}
}
