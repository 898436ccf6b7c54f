package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sqlbench/internal/engine"
)

// SeedDemo loads the bundled blog schema so a fresh database has something
// to explore. It only runs when no tables exist yet.
func SeedDemo(ctx context.Context, db engine.Engine, schemaService *SchemaService, log zerolog.Logger) error {
	snap, err := schemaService.Refresh(ctx)
	if err != nil {
		return err
	}
	if len(snap.Tables) > 0 {
		log.Info().Int("tables", len(snap.Tables)).Msg("database not empty, skipping demo seed")
		return nil
	}

	statements := []string{
		createDemoUsers,
		createDemoPosts,
		createDemoComments,
		insertDemoUsers,
		insertDemoPosts,
		insertDemoComments,
	}

	for i, stmt := range statements {
		if _, err := db.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("demo seed statement %d/%d failed: %w", i+1, len(statements), err)
		}
	}

	if _, err := schemaService.Refresh(ctx); err != nil {
		return err
	}

	log.Info().Msg("demo schema loaded")
	return nil
}

const createDemoUsers = `
CREATE TABLE users (
  id SERIAL PRIMARY KEY,
  username VARCHAR(50) NOT NULL,
  email VARCHAR(120) NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const createDemoPosts = `
CREATE TABLE posts (
  id SERIAL PRIMARY KEY,
  user_id INTEGER NOT NULL REFERENCES users(id),
  title VARCHAR(200) NOT NULL,
  body TEXT,
  published BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const createDemoComments = `
CREATE TABLE comments (
  id SERIAL PRIMARY KEY,
  post_id INTEGER NOT NULL REFERENCES posts(id),
  user_id INTEGER NOT NULL REFERENCES users(id),
  body TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

const insertDemoUsers = `
INSERT INTO users (username, email) VALUES
  ('alice', 'alice@example.com'),
  ('bob', 'bob@example.com'),
  ('carol', 'carol@example.com');
`

const insertDemoPosts = `
INSERT INTO posts (user_id, title, body, published) VALUES
  (1, 'Hello, world', 'First post on the demo blog.', TRUE),
  (1, 'Drafts aren''t visible', 'Still working on this one.', FALSE),
  (2, 'Query tips', 'Use EXPLAIN to see the plan.', TRUE);
`

const insertDemoComments = `
INSERT INTO comments (post_id, user_id, body) VALUES
  (1, 2, 'Welcome aboard!'),
  (1, 3, 'Nice to see this live.'),
  (3, 1, 'Good tip, thanks.');
`
