package export

const schema = `
-- The 'entries' table mirrors the JSON data file, one row per entry.
CREATE TABLE IF NOT EXISTS entries (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    image_path TEXT NOT NULL,
    answer TEXT NOT NULL
);
`
