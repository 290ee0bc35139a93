package mongodb

import (
	"context"
	"fmt"

	"github.com/Tibluka/voicetaskapi/logger"
	"github.com/Tibluka/voicetaskapi/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// SpendingStore is the ledger collection: every Spending document of every
// user, keyed by _id and scoped by userId.
type SpendingStore struct {
	collection *mongo.Collection
}

func NewSpendingStore() *SpendingStore {
	return &SpendingStore{
		collection: MongoClient.Database(MongoDatabase).Collection(SpendingCollection),
	}
}

func (s *SpendingStore) InsertOne(ctx context.Context, item *models.Spending) error {
	_, err := s.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("error creating spending: %v", err)
	}
	return nil
}

// InsertPlan persists one installment plan as a unit. If any child write
// fails, every record of the plan that already landed is deleted so no
// caller ever observes an orphaned parent.
func (s *SpendingStore) InsertPlan(ctx context.Context, parent *models.Spending, children []models.Spending) error {
	if _, err := s.collection.InsertOne(ctx, parent); err != nil {
		return fmt.Errorf("error creating installment parent: %v", err)
	}

	docs := make([]interface{}, 0, len(children))
	for i := range children {
		docs = append(docs, children[i])
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		if _, cleanupErr := s.collection.DeleteMany(ctx, planFilter(parent.UserID, parent.ID)); cleanupErr != nil {
			logger.Get().Error("failed to clean up partial installment plan",
				zap.String("parent_id", parent.ID),
				zap.Error(cleanupErr))
		}
		return fmt.Errorf("error creating installment children: %v", err)
	}
	return nil
}

func (s *SpendingStore) FindByID(ctx context.Context, userID, id string) (*models.Spending, error) {
	filter := bson.M{"_id": id, "userId": userID}

	var item models.Spending
	err := s.collection.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found, but not an error
		}
		return nil, fmt.Errorf("error fetching spending: %v", err)
	}
	return &item, nil
}

func (s *SpendingStore) Find(ctx context.Context, f models.SpendingFilter) ([]models.Spending, error) {
	opts := options.Find()
	switch {
	case f.SortByValueDesc:
		opts.SetSort(bson.D{{Key: "value", Value: -1}})
	case f.SortByValueAsc:
		opts.SetSort(bson.D{{Key: "value", Value: 1}})
	case f.SortByDateDesc:
		opts.SetSort(bson.D{{Key: "date", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := s.collection.Find(ctx, spendingFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching spendings: %v", err)
	}
	defer cursor.Close(ctx)

	items := []models.Spending{}
	for cursor.Next(ctx) {
		var item models.Spending
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("error decoding spending: %v", err)
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return items, nil
}

// FindPlan returns an installment plan: the parent record followed by every
// child referencing it.
func (s *SpendingStore) FindPlan(ctx context.Context, userID, parentID string) ([]models.Spending, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.collection.Find(ctx, planFilter(userID, parentID), opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching installment plan: %v", err)
	}
	defer cursor.Close(ctx)

	items := []models.Spending{}
	for cursor.Next(ctx) {
		var item models.Spending
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("error decoding spending: %v", err)
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return items, nil
}

func (s *SpendingStore) Delete(ctx context.Context, userID, id string) (int64, error) {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return 0, fmt.Errorf("error deleting spending: %v", err)
	}
	return result.DeletedCount, nil
}

// DeletePlan removes a parent record and all of its children in one operation.
func (s *SpendingStore) DeletePlan(ctx context.Context, userID, parentID string) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, planFilter(userID, parentID))
	if err != nil {
		return 0, fmt.Errorf("error deleting installment plan: %v", err)
	}
	return result.DeletedCount, nil
}

func (s *SpendingStore) SumByCategory(ctx context.Context, f models.SpendingFilter) ([]models.CategoryTotal, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: spendingFilter(f)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"value": bson.M{"$sum": "$value"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "value", Value: -1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating by category: %v", err)
	}
	defer cursor.Close(ctx)

	totals := []models.CategoryTotal{}
	for cursor.Next(ctx) {
		var t models.CategoryTotal
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding category total: %v", err)
		}
		totals = append(totals, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return totals, nil
}

func (s *SpendingStore) SumByMonth(ctx context.Context, f models.SpendingFilter) ([]models.MonthTotal, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: spendingFilter(f)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$substrBytes": bson.A{"$date", 0, 7}},
			"total": bson.M{"$sum": "$value"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating by month: %v", err)
	}
	defer cursor.Close(ctx)

	totals := []models.MonthTotal{}
	for cursor.Next(ctx) {
		var bucket struct {
			YearMonth string  `bson:"_id"`
			Total     float64 `bson:"total"`
		}
		if err := cursor.Decode(&bucket); err != nil {
			return nil, fmt.Errorf("error decoding month total: %v", err)
		}
		totals = append(totals, models.MonthTotal{
			Month: formatMonthLabel(bucket.YearMonth),
			Total: bucket.Total,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return totals, nil
}

// formatMonthLabel turns a "YYYY-MM" group key into the "MM/YYYY" label the
// comparative view reports.
func formatMonthLabel(yearMonth string) string {
	if len(yearMonth) != 7 {
		return yearMonth
	}
	return yearMonth[5:7] + "/" + yearMonth[0:4]
}

func planFilter(userID, parentID string) bson.M {
	return bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{"_id": parentID},
			bson.M{"parent_id": parentID},
		},
	}
}

func spendingFilter(f models.SpendingFilter) bson.M {
	filter := bson.M{"userId": f.UserID}

	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	if f.ProjectID != "" {
		filter["projectId"] = f.ProjectID
	} else if !f.IncludeProjectLinked {
		// General consults keep project spending out of the "all spending"
		// view unless explicitly requested.
		filter["projectId"] = bson.M{"$exists": false}
	}

	if f.DateOn != "" {
		filter["date"] = f.DateOn
	} else {
		dateRange := bson.M{}
		if f.DateFrom != "" {
			dateRange["$gte"] = f.DateFrom
		}
		if f.DateBefore != "" {
			dateRange["$lt"] = f.DateBefore
		}
		if f.DateThrough != "" {
			dateRange["$lte"] = f.DateThrough
		}
		if len(dateRange) > 0 {
			filter["date"] = dateRange
		}
	}

	if !f.AllRecords {
		if f.InstallmentDetail {
			filter["installments"] = bson.M{"$gte": 1}
		} else {
			filter["parent_id"] = bson.M{"$exists": false}
		}
	}

	return filter
}
