package journal

const Schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	granularity TEXT NOT NULL,
	candle_count INTEGER NOT NULL,
	variant TEXT NOT NULL,
	duration_us INTEGER NOT NULL,
	status TEXT NOT NULL,
	detail TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_time ON analyses(time);
`
