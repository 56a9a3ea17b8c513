// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureAssignments(ctx, db); err != nil {
		problems = append(problems, "assignments: "+err.Error())
	}
	if err := ensureSubmissions(ctx, db); err != nil {
		problems = append(problems, "submissions: "+err.Error())
	}
	if err := ensureReviews(ctx, db); err != nil {
		problems = append(problems, "peer_reviews: "+err.Error())
	}
	if err := ensureChatMessages(ctx, db); err != nil {
		problems = append(problems, "chat_messages: "+err.Error())
	}
	if err := ensureFeedbackPosts(ctx, db); err != nil {
		problems = append(problems, "feedback_posts: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		// Load what already exists so repeated startups don't churn.
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				continue
			}
			// Name or options differ: drop and recreate with the desired shape.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is the login identifier and must be unique.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Role-scoped listings ordered by folded name.
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "full_name_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_fullnameci"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("teams")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_nameci"),
		},
		{
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_teams_members"),
		},
	})
}

func ensureAssignments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("assignments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "due_date", Value: 1}},
			Options: options.Index().SetName("idx_assignments_duedate"),
		},
		{
			Keys:    bson.D{{Key: "team_ids", Value: 1}},
			Options: options.Index().SetName("idx_assignments_teams"),
		},
	})
}

func ensureSubmissions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("submissions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One submission per (assignment, student).
		{
			Keys: bson.D{
				{Key: "assignment_id", Value: 1},
				{Key: "student_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_submissions_assignment_student"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}},
			Options: options.Index().SetName("idx_submissions_student"),
		},
		{
			Keys: bson.D{
				{Key: "assignment_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_submissions_assignment_status"),
		},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("peer_reviews")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "reviewer_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_reviews_reviewer_status"),
		},
		{
			Keys:    bson.D{{Key: "submission_id", Value: 1}},
			Options: options.Index().SetName("idx_reviews_submission"),
		},
		{
			Keys:    bson.D{{Key: "assignment_id", Value: 1}},
			Options: options.Index().SetName("idx_reviews_assignment"),
		},
	})
}

func ensureChatMessages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("chat_messages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "assignment_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("idx_chat_assignment_createdat"),
		},
	})
}

func ensureFeedbackPosts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("feedback_posts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_feedback_createdat"),
		},
	})
}
