package postgres

// SQL for ingestion, aggregation and query history.

const (
	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`

	// queryInsertBatch registers a source file. The unique index on source makes
	// a repeated ingestion return no row (sql.ErrNoRows), which is the no-op path.
	// Concurrent inserts of the same source block on the index until the first
	// transaction resolves.
	queryInsertBatch = `
		INSERT INTO ts_metadata (ingestion_datetime, source)
		VALUES ($1, $2)
		ON CONFLICT (source) DO NOTHING
		RETURNING ingestion_id
	`

	// queryInsertPoints bulk inserts one chunk of readings for a batch.
	// $2 and $3 are parallel arrays; duplicates on (ingestion_id, datetime) are dropped.
	queryInsertPoints = `
		INSERT INTO ts_store (ingestion_id, datetime, amount)
		SELECT $1, t.datetime, t.amount
		FROM unnest($2::timestamptz[], $3::numeric[]) AS t(datetime, amount)
		ON CONFLICT (ingestion_id, datetime) DO NOTHING
	`

	// queryInsertHistory is the first statement of every aggregation transaction.
	queryInsertHistory = `
		INSERT INTO query_history (executed_at, from_date, to_date, aggregation)
		VALUES ($1, $2, $3, $4::aggregation_kind)
		RETURNING id
	`

	// queryAggregate groups readings by bucket start. $1 is a date_trunc field
	// (hour, day, month, year); truncation happens in UTC regardless of the
	// session time zone. Both bounds are inclusive and optional (NULL).
	// No ORDER BY: bucket order is unspecified.
	queryAggregate = `
		SELECT
			date_trunc($1, datetime AT TIME ZONE 'UTC') AT TIME ZONE 'UTC' AS bucket,
			SUM(amount) AS total_amount
		FROM ts_store
		WHERE ($2::timestamptz IS NULL OR datetime >= $2::timestamptz)
		  AND ($3::timestamptz IS NULL OR datetime <= $3::timestamptz)
		GROUP BY 1
	`

	queryListHistory = `
		SELECT id, executed_at, from_date, to_date, aggregation::text
		FROM query_history
		ORDER BY executed_at DESC, id DESC
		LIMIT $1
	`
)
