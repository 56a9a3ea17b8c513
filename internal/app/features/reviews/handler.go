// internal/app/features/reviews/handler.go
package reviews

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/system/assist"
)

// Handler serves peer review: students score and write feedback on
// assigned submissions, teachers assign reviewers and close work out.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Assist *assist.Client
}

func NewHandler(db *mongo.Database, logger *zap.Logger, assistClient *assist.Client) *Handler {
	return &Handler{DB: db, Log: logger, Assist: assistClient}
}
