package postgres

// SQL queries over the single append-only events table.
// seq is the storage position; it orders pagination and breaks timestamp ties.

const (
	// queryAppendEvent inserts one event and returns its storage position.
	// A duplicate event_id violates the UNIQUE constraint and surfaces as an error.
	queryAppendEvent = `
		INSERT INTO events (
			event_id, event_type, aggregate_id, occurred_at, payload
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`

	// queryListHouses returns every registration in storage order.
	queryListHouses = `
		SELECT
			seq, event_id, event_type, aggregate_id, occurred_at, payload
		FROM events
		WHERE event_type = $1
		ORDER BY seq ASC
	`

	// queryRecentSignals pages the signal stream newest first.
	// $2 = '' disables the house filter, $3 = 0 starts from the newest event.
	// The caller asks for one row more than the page size to learn whether another page exists.
	queryRecentSignals = `
		SELECT
			seq, event_id, event_type, aggregate_id, occurred_at, payload
		FROM events
		WHERE event_type = $1
		  AND ($2 = '' OR aggregate_id = $2)
		  AND ($3::BIGINT = 0 OR seq < $3)
		ORDER BY seq DESC
		LIMIT $4
	`

	// queryLatestForHouse returns the newest event of one type for a house.
	queryLatestForHouse = `
		SELECT
			seq, event_id, event_type, aggregate_id, occurred_at, payload
		FROM events
		WHERE event_type = $1
		  AND aggregate_id = $2
		ORDER BY occurred_at DESC, seq DESC
		LIMIT 1
	`

	// queryHistoryForHouse returns every event of one type for a house, newest first.
	queryHistoryForHouse = `
		SELECT
			seq, event_id, event_type, aggregate_id, occurred_at, payload
		FROM events
		WHERE event_type = $1
		  AND aggregate_id = $2
		ORDER BY occurred_at DESC, seq DESC
	`

	// queryCheckSchema reports whether the events table exists.
	queryCheckSchema = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'events'
		)
	`
)
