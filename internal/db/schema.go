package db

const schema = `
-- Confirmed booking submissions
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT DEFAULT '',
    email TEXT DEFAULT '',
    treatment_id TEXT NOT NULL,
    treatment_label TEXT NOT NULL,
    time_slot_id TEXT NOT NULL,
    time_slot_label TEXT NOT NULL,
    notes TEXT DEFAULT '',
    submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
`
