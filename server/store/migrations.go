package store

// migrate creates the postgres tables
func (p *Postgres) migrate() error {
	migrations := []string{
		migrationPosts,
		migrationComments,
	}

	for _, m := range migrations {
		if _, err := p.db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

const migrationPosts = `
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    author TEXT NOT NULL,
    view_count INTEGER NOT NULL DEFAULT 0,
    is_notice BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const migrationComments = `
CREATE TABLE IF NOT EXISTS comments (
    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    id INTEGER NOT NULL,
    author TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (post_id, id)
);
`
