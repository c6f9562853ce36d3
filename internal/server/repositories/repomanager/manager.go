package repomanager

import (
	"context"
	"database/sql"

	"github.com/OscarDom1/community-resource-platform/internal/dbx"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/resources"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns schema
// migrations.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Resources(db dbx.DBTX) resources.Repository
}
