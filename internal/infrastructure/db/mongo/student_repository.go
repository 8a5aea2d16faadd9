package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

const studentsCollection = "students"

type StudentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{coll: db.Collection(studentsCollection)}
}

type mongoStudent struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone,omitempty"`
	PasswordHash    string             `bson:"password_hash"`
	Role            string             `bson:"role"`
	DateOfBirth     string             `bson:"date_of_birth,omitempty"`
	ClassCourse     string             `bson:"class_course,omitempty"`
	ProfileImageURL string             `bson:"profile_image_url,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoStudent{
		Name:            student.Name,
		Email:           student.Email,
		Phone:           student.Phone,
		PasswordHash:    student.PasswordHash,
		Role:            student.Role,
		DateOfBirth:     student.DateOfBirth,
		ClassCourse:     student.ClassCourse,
		ProfileImageURL: student.ProfileImageURL,
		CreatedAt:       student.CreatedAt,
		UpdatedAt:       student.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, fmt.Errorf("insert student: %w", err)
	}

	created := *student
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *StudentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoStudent
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return ms.toDomain(), nil
}

// ExistsByEmailOrPhone reports which of the pair are already taken by a
// student. An empty phone is never queried (the phone index is sparse).
func (r *StudentRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clauses := []bson.M{{"email": email}}
	if phone != "" {
		clauses = append(clauses, bson.M{"phone": phone})
	}

	cur, err := r.coll.Find(ctx, bson.M{"$or": clauses},
		options.Find().SetProjection(bson.M{"email": 1, "phone": 1}))
	if err != nil {
		return false, false, fmt.Errorf("check student identity: %w", err)
	}
	defer cur.Close(ctx)

	var emailTaken, phoneTaken bool
	for cur.Next(ctx) {
		var doc struct {
			Email string `bson:"email"`
			Phone string `bson:"phone"`
		}
		if err := cur.Decode(&doc); err != nil {
			return false, false, fmt.Errorf("check student identity: %w", err)
		}
		if doc.Email == email {
			emailTaken = true
		}
		if phone != "" && doc.Phone == phone {
			phoneTaken = true
		}
	}
	return emailTaken, phoneTaken, cur.Err()
}

func (r *StudentRepository) UpdateName(ctx context.Context, id, name string) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoStudent
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("update student name: %w", err)
	}
	return ms.toDomain(), nil
}

// EnsureIndexes creates the unique email index and the unique sparse phone
// index. Phone uniqueness applies to students; absent phones do not collide.
func (r *StudentRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (ms *mongoStudent) toDomain() *domain.Student {
	return &domain.Student{
		ID:              ms.ID.Hex(),
		Name:            ms.Name,
		Email:           ms.Email,
		Phone:           ms.Phone,
		PasswordHash:    ms.PasswordHash,
		Role:            ms.Role,
		DateOfBirth:     ms.DateOfBirth,
		ClassCourse:     ms.ClassCourse,
		ProfileImageURL: ms.ProfileImageURL,
		CreatedAt:       ms.CreatedAt,
		UpdatedAt:       ms.UpdatedAt,
	}
}

// duplicateKeyConflict maps a Mongo duplicate-key error to the conflict
// sentinel for the index that fired, so a lost registration race reports the
// same error as the pre-flight registry check.
func duplicateKeyConflict(err error) error {
	if strings.Contains(err.Error(), "phone") {
		return domain.ErrPhoneTaken
	}
	return domain.ErrEmailTaken
}
