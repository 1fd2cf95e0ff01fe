package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
)

const plantCollection = "plants"

type PlantRepository struct {
	coll *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{coll: db.Collection(plantCollection)}
}

type mongoPlant struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	ScientificName  string             `bson:"scientific_name"`
	TagalogName     string             `bson:"tagalog_name,omitempty"`
	Family          string             `bson:"family"`
	Genus           string             `bson:"genus"`
	Category        []string           `bson:"category"`
	Uses            []string           `bson:"uses"`
	Description     string             `bson:"description"`
	ActiveCompounds []string           `bson:"active_compounds"`
	Preparation     []string           `bson:"preparation"`
	Precautions     []string           `bson:"precautions"`
	Image           string             `bson:"image,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// List returns a page of plants sorted by updated_at descending, plus the
// total collection size.
func (r *PlantRepository) List(ctx context.Context, skip, limit int64) ([]*domain.Plant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count plants: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list plants: %w", err)
	}
	plants, err := decodePlants(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return plants, total, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPlant
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PlantRepository) Insert(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, plantToDoc(plant))
	if err != nil {
		return nil, fmt.Errorf("insert plant: %w", err)
	}

	created := *plant
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *PlantRepository) Update(ctx context.Context, id string, plant *domain.Plant) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := plantToDoc(plant)
	update := bson.M{"$set": bson.M{
		"name":             doc.Name,
		"scientific_name":  doc.ScientificName,
		"tagalog_name":     doc.TagalogName,
		"family":           doc.Family,
		"genus":            doc.Genus,
		"category":         doc.Category,
		"uses":             doc.Uses,
		"description":      doc.Description,
		"active_compounds": doc.ActiveCompounds,
		"preparation":      doc.Preparation,
		"precautions":      doc.Precautions,
		"image":            doc.Image,
		"updated_at":       doc.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update plant: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPlantNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

// Search performs a case-insensitive regex match over the fields selected by
// filter, mirroring the catalog's public search semantics.
func (r *PlantRepository) Search(ctx context.Context, query string, filter ports.SearchFilter) ([]*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	regex := primitive.Regex{Pattern: query, Options: "i"}

	var match bson.M
	switch filter {
	case ports.FilterName:
		match = bson.M{"$or": bson.A{
			bson.M{"name": regex},
			bson.M{"scientific_name": regex},
			bson.M{"tagalog_name": regex},
		}}
	case ports.FilterUses:
		match = bson.M{"uses": regex}
	default:
		match = bson.M{"$or": bson.A{
			bson.M{"name": regex},
			bson.M{"scientific_name": regex},
			bson.M{"tagalog_name": regex},
			bson.M{"uses": regex},
			bson.M{"description": regex},
		}}
	}

	cur, err := r.coll.Find(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("search plants: %w", err)
	}
	return decodePlants(ctx, cur)
}

// CountByCategory unwinds the category tags and counts plants per tag.
func (r *PlantRepository) CountByCategory(ctx context.Context) ([]ports.CategoryCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer cur.Close(ctx)

	var counts []ports.CategoryCount
	for cur.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode category count: %w", err)
		}
		counts = append(counts, ports.CategoryCount{Name: row.Name, Count: row.Count})
	}
	return counts, cur.Err()
}

// EnsureIndexes creates the indexes serving list and search queries.
func (r *PlantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodePlants(ctx context.Context, cur *mongo.Cursor) ([]*domain.Plant, error) {
	defer cur.Close(ctx)

	plants := make([]*domain.Plant, 0)
	for cur.Next(ctx) {
		var mp mongoPlant
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode plant: %w", err)
		}
		plants = append(plants, mp.toDomain())
	}
	return plants, cur.Err()
}

func plantToDoc(p *domain.Plant) mongoPlant {
	return mongoPlant{
		Name:            p.Name,
		ScientificName:  p.ScientificName,
		TagalogName:     p.TagalogName,
		Family:          p.Family,
		Genus:           p.Genus,
		Category:        p.Category,
		Uses:            p.Uses,
		Description:     p.Description,
		ActiveCompounds: p.ActiveCompounds,
		Preparation:     p.Preparation,
		Precautions:     p.Precautions,
		Image:           p.Image,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (mp mongoPlant) toDomain() *domain.Plant {
	return &domain.Plant{
		ID:              mp.ID.Hex(),
		Name:            mp.Name,
		ScientificName:  mp.ScientificName,
		TagalogName:     mp.TagalogName,
		Family:          mp.Family,
		Genus:           mp.Genus,
		Category:        mp.Category,
		Uses:            mp.Uses,
		Description:     mp.Description,
		ActiveCompounds: mp.ActiveCompounds,
		Preparation:     mp.Preparation,
		Precautions:     mp.Precautions,
		Image:           mp.Image,
		CreatedAt:       mp.CreatedAt,
		UpdatedAt:       mp.UpdatedAt,
	}
}
