// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	OfficeHubMongoClient   *mongo.Client
	OfficeHubMongoDatabase *mongo.Database
}
