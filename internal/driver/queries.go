package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Memory(id);",
	"CREATE INDEX ON :Memory(created_at);",
}

const (
	memoryFields = `m.id AS id, m.text AS text, m.summary AS summary, m.embedding AS embedding,
		m.tags AS tags, m.year AS year, m.theme AS theme, m.timeframe AS timeframe,
		m.created_at AS created_at`

	SaveMemoryQuery = `
		MERGE (m:Memory {id: $id})
		SET m.text = $text,
			m.summary = $summary,
			m.embedding = $embedding,
			m.tags = $tags,
			m.year = $year,
			m.theme = $theme,
			m.timeframe = $timeframe,
			m.created_at = $created_at
		RETURN m.id AS id
	`

	SaveMemoriesQuery = `
		UNWIND $memories AS row
		MERGE (m:Memory {id: row.id})
		SET m.text = row.text,
			m.summary = row.summary,
			m.embedding = row.embedding,
			m.tags = row.tags,
			m.year = row.year,
			m.theme = row.theme,
			m.timeframe = row.timeframe,
			m.created_at = row.created_at
		RETURN count(m) AS saved
	`

	ListMemoriesQuery = `
		MATCH (m:Memory)
		RETURN ` + memoryFields + `
		ORDER BY m.created_at ASC, m.id ASC
	`

	GetMemoryQuery = `
		MATCH (m:Memory {id: $id})
		RETURN ` + memoryFields

	DeleteMemoryQuery = `
		MATCH (m:Memory {id: $id})
		DETACH DELETE m
	`
)
