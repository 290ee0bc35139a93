package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Tibluka/voicetaskapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ProfileStore holds one ProfileConfig document per user, embedding that
// user's projects and fixed bills. Array mutations go through positional
// updates so concurrent writers never clobber sibling elements.
type ProfileStore struct {
	collection *mongo.Collection
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		collection: MongoClient.Database(MongoDatabase).Collection(ProfileConfigCollection),
	}
}

func (s *ProfileStore) Get(ctx context.Context, userID string) (*models.ProfileConfig, error) {
	filter := bson.M{"userId": userID}

	var cfg models.ProfileConfig
	err := s.collection.FindOne(ctx, filter).Decode(&cfg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found, but not an error
		}
		return nil, fmt.Errorf("error fetching profile config: %v", err)
	}
	return &cfg, nil
}

func (s *ProfileStore) Insert(ctx context.Context, cfg *models.ProfileConfig) error {
	result, err := s.collection.InsertOne(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error creating profile config: %v", err)
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		cfg.ID = oid.Hex()
	}
	return nil
}

// GetOrCreate returns the user's profile config, lazily creating the default
// 50/30/20 configuration on first access.
func (s *ProfileStore) GetOrCreate(ctx context.Context, userID string) (*models.ProfileConfig, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}

	cfg = models.NewDefaultProfileConfig(userID)
	if err := s.Insert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *ProfileStore) SetFields(ctx context.Context, userID string, fields map[string]any) (int64, error) {
	update := bson.M{}
	for k, v := range fields {
		update[k] = v
	}
	update["updatedAt"] = time.Now().UTC()

	result, err := s.collection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": update})
	if err != nil {
		return 0, fmt.Errorf("error updating profile config: %v", err)
	}
	return result.MatchedCount, nil
}

func (s *ProfileStore) AddProject(ctx context.Context, userID string, project models.Project) error {
	update := bson.M{
		"$push": bson.M{"projects": project},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := s.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("error adding project: %v", err)
	}
	return nil
}

// ApplyProjectDelta increments a project's running total and, when an entry
// is supplied, appends it to the expense history in the same atomic update.
// The total and the history never disagree.
func (s *ProfileStore) ApplyProjectDelta(ctx context.Context, userID, projectID string, delta float64, entry *models.ExpenseEntry) (int64, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{"projects.$.totalValueRegistered": delta},
		"$set": bson.M{
			"projects.$.dateHourUpdated": now,
			"updatedAt":                  now,
		},
	}
	if entry != nil {
		update["$push"] = bson.M{"projects.$.expenseHistory": entry}
	}

	filter := bson.M{"userId": userID, "projects.projectId": projectID}
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error applying project delta: %v", err)
	}
	return result.MatchedCount, nil
}

func (s *ProfileStore) UpdateProjectFields(ctx context.Context, userID, projectID string, fields map[string]any) (int64, error) {
	update := bson.M{}
	for k, v := range fields {
		update["projects.$."+k] = v
	}
	now := time.Now().UTC()
	update["projects.$.dateHourUpdated"] = now
	update["updatedAt"] = now

	filter := bson.M{"userId": userID, "projects.projectId": projectID}
	result, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		return 0, fmt.Errorf("error updating project: %v", err)
	}
	return result.MatchedCount, nil
}

func (s *ProfileStore) RemoveProject(ctx context.Context, userID, projectID string) (int64, error) {
	update := bson.M{
		"$pull": bson.M{"projects": bson.M{"projectId": projectID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return 0, fmt.Errorf("error removing project: %v", err)
	}
	return result.ModifiedCount, nil
}

func (s *ProfileStore) AddFixedBill(ctx context.Context, userID string, bill models.FixedBill) error {
	update := bson.M{
		"$push": bson.M{"fixedBills": bill},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err := s.collection.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("error adding fixed bill: %v", err)
	}
	return nil
}

func (s *ProfileStore) UpdateBillFields(ctx context.Context, userID, billID string, fields map[string]any) (int64, error) {
	update := bson.M{}
	for k, v := range fields {
		update["fixedBills.$."+k] = v
	}
	now := time.Now().UTC()
	update["fixedBills.$.updatedAt"] = now
	update["updatedAt"] = now

	filter := bson.M{"userId": userID, "fixedBills.billId": billID}
	result, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		return 0, fmt.Errorf("error updating fixed bill: %v", err)
	}
	return result.MatchedCount, nil
}

func (s *ProfileStore) PushPaymentRecord(ctx context.Context, userID, billID string, record models.PaymentRecord) (int64, error) {
	update := bson.M{
		"$push": bson.M{"fixedBills.$.paymentHistory": record},
		"$set": bson.M{
			"fixedBills.$.updatedAt": time.Now().UTC(),
		},
	}
	filter := bson.M{"userId": userID, "fixedBills.billId": billID}
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error recording payment: %v", err)
	}
	return result.MatchedCount, nil
}

func (s *ProfileStore) PullPaymentRecords(ctx context.Context, userID, billID, month string) (int64, error) {
	update := bson.M{
		"$pull": bson.M{"fixedBills.$.paymentHistory": bson.M{"month": month}},
	}
	filter := bson.M{"userId": userID, "fixedBills.billId": billID}
	result, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error removing payment: %v", err)
	}
	return result.ModifiedCount, nil
}
