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

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

const tutorsCollection = "tutors"

type TutorRepository struct {
	coll *mongo.Collection
}

func NewTutorRepository(db *mongo.Database) *TutorRepository {
	return &TutorRepository{coll: db.Collection(tutorsCollection)}
}

type mongoTutor struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID     string             `bson:"application_id"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Phone             string             `bson:"phone,omitempty"`
	Subjects          []string           `bson:"subjects"`
	Bio               string             `bson:"bio,omitempty"`
	City              string             `bson:"city,omitempty"`
	HighestEducation  string             `bson:"highest_education,omitempty"`
	ExperienceYears   float64            `bson:"experience_years"`
	ProfileImageURL   string             `bson:"profile_image_url"`
	EducationProofURL string             `bson:"education_proof_url"`
	Status            string             `bson:"status"`
	PasswordHash      string             `bson:"password_hash,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (r *TutorRepository) Create(ctx context.Context, tutor *domain.Tutor) (*domain.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTutor{
		ApplicationID:     tutor.ApplicationID,
		Name:              tutor.Name,
		Email:             tutor.Email,
		Phone:             tutor.Phone,
		Subjects:          tutor.Subjects,
		Bio:               tutor.Bio,
		City:              tutor.City,
		HighestEducation:  tutor.HighestEducation,
		ExperienceYears:   tutor.ExperienceYears,
		ProfileImageURL:   tutor.ProfileImageURL,
		EducationProofURL: tutor.EducationProofURL,
		Status:            string(tutor.Status),
		PasswordHash:      tutor.PasswordHash,
		CreatedAt:         tutor.CreatedAt,
		UpdatedAt:         tutor.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, fmt.Errorf("insert tutor: %w", err)
	}

	created := *tutor
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TutorRepository) FindByID(ctx context.Context, id string) (*domain.Tutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTutorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TutorRepository) FindByEmail(ctx context.Context, email string) (*domain.Tutor, error) {
	return r.findOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
}

func (r *TutorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTutor
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorNotFound
		}
		return nil, fmt.Errorf("find tutor: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TutorRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	clauses := []bson.M{{"email": email}}
	if phone != "" {
		clauses = append(clauses, bson.M{"phone": phone})
	}

	cur, err := r.coll.Find(ctx, bson.M{"$or": clauses},
		options.Find().SetProjection(bson.M{"email": 1, "phone": 1}))
	if err != nil {
		return false, false, fmt.Errorf("check tutor identity: %w", err)
	}
	defer cur.Close(ctx)

	var emailTaken, phoneTaken bool
	for cur.Next(ctx) {
		var doc struct {
			Email string `bson:"email"`
			Phone string `bson:"phone"`
		}
		if err := cur.Decode(&doc); err != nil {
			return false, false, fmt.Errorf("check tutor identity: %w", err)
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

// ListByStatus returns tutors in the given status, newest first.
func (r *TutorRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Tutor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx,
		bson.M{"status": string(status)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Tutor
	for cur.Next(ctx) {
		var mt mongoTutor
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tutor: %w", err)
		}
		out = append(out, mt.toDomain())
	}
	return out, cur.Err()
}

// ApproveWithCredential sets status=approved and the credential hash in one
// conditional update filtered on status=pending. The filter is what makes a
// double approval fail instead of silently resetting the credential.
func (r *TutorRepository) ApproveWithCredential(ctx context.Context, id, passwordHash string) (*domain.Tutor, error) {
	return r.transition(ctx, id, domain.StatusApproved, bson.M{
		"status":        string(domain.StatusApproved),
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	})
}

// Reject sets status=rejected on a still-pending record.
func (r *TutorRepository) Reject(ctx context.Context, id string) (*domain.Tutor, error) {
	return r.transition(ctx, id, domain.StatusRejected, bson.M{
		"status":     string(domain.StatusRejected),
		"updated_at": time.Now().UTC(),
	})
}

func (r *TutorRepository) transition(ctx context.Context, id string, next domain.ApplicationStatus, set bson.M) (*domain.Tutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTutorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTutor
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusPending)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err == nil {
		return mt.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("transition tutor to %s: %w", next, err)
	}

	// No pending record matched: distinguish missing from already decided.
	current, ferr := r.FindByID(ctx, id)
	if ferr != nil {
		return nil, ferr
	}
	if current.Status.CanTransitionTo(next) {
		// Still eligible yet the conditional update missed it; surface the
		// anomaly instead of mislabeling the record as decided.
		return nil, fmt.Errorf("transition tutor to %s: concurrent update", next)
	}
	return nil, domain.ErrAlreadyProcessed
}

func (r *TutorRepository) UpdateName(ctx context.Context, id, name string) (*domain.Tutor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTutorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTutor
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorNotFound
		}
		return nil, fmt.Errorf("update tutor name: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TutorRepository) UpdateNameByEmail(ctx context.Context, email, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update tutor name by email: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTutorNotFound
	}
	return nil
}

func (r *TutorRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "application_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mt *mongoTutor) toDomain() *domain.Tutor {
	return &domain.Tutor{
		ID:                mt.ID.Hex(),
		ApplicationID:     mt.ApplicationID,
		Name:              mt.Name,
		Email:             mt.Email,
		Phone:             mt.Phone,
		Subjects:          mt.Subjects,
		Bio:               mt.Bio,
		City:              mt.City,
		HighestEducation:  mt.HighestEducation,
		ExperienceYears:   mt.ExperienceYears,
		ProfileImageURL:   mt.ProfileImageURL,
		EducationProofURL: mt.EducationProofURL,
		Status:            domain.ApplicationStatus(mt.Status),
		PasswordHash:      mt.PasswordHash,
		CreatedAt:         mt.CreatedAt,
		UpdatedAt:         mt.UpdatedAt,
	}
}
