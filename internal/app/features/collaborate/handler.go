// internal/app/features/collaborate/handler.go
package collaborate

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/peerloop/peerloop/internal/app/system/assist"
)

// Handler serves per-assignment discussion threads.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Assist *assist.Client
}

func NewHandler(db *mongo.Database, logger *zap.Logger, assistClient *assist.Client) *Handler {
	return &Handler{DB: db, Log: logger, Assist: assistClient}
}
