package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	schemaVersion  = "1"
	searchWindow   = 30 * 24 * time.Hour
	searchPageSize = 100
)

var schemaVersionKey = []byte("schema_version")

// entry is the document shape indexed in bleve.
type entry struct {
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	ObjectType string    `json:"object_type"`
	ObjectID   string    `json:"object_id"`
	Object     string    `json:"object"`
}

// FilesystemClient keeps the activity log in a local bleve index.
type FilesystemClient struct {
	index bleve.Index
}

func NewFilesystemClient(directory string) (*FilesystemClient, error) {
	index, err := openIndex(directory)
	if err != nil {
		return nil, err
	}
	return &FilesystemClient{index: index}, nil
}

// openIndex opens the index at dir, creating it when missing. An index written with another
// schema version is moved aside and replaced by an empty one.
func openIndex(dir string) (bleve.Index, error) {
	index, err := bleve.Open(dir)
	if err != nil {
		return createIndex(dir)
	}

	stored, err := index.GetInternal(schemaVersionKey)
	if err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}
	if string(stored) == schemaVersion {
		return index, nil
	}

	if err = index.Close(); err != nil {
		return nil, fmt.Errorf("failed to close outdated index: %w", err)
	}
	archived := fmt.Sprintf("%s.v%s", dir, stored)
	if err = os.Rename(dir, archived); err != nil {
		return nil, fmt.Errorf("failed to archive outdated index: %w", err)
	}
	zap.L().Warn("Activity index schema changed, previous index archived",
		zap.String("archived_to", archived),
		zap.String("schema_version", schemaVersion))

	return createIndex(dir)
}

func createIndex(dir string) (bleve.Index, error) {
	index, err := bleve.New(dir, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create activity index: %w", err)
	}
	if err = index.SetInternal(schemaVersionKey, []byte(schemaVersion)); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to set schema version: %w", err)
	}
	return index, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	keyword := bleve.NewKeywordFieldMapping()

	stored := bleve.NewTextFieldMapping()
	stored.Index = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("action", keyword)
	doc.AddFieldMappingsAt("object_type", keyword)
	doc.AddFieldMappingsAt("object_id", keyword)
	doc.AddFieldMappingsAt("timestamp", bleve.NewDateTimeFieldMapping())
	doc.AddFieldMappingsAt("message", bleve.NewTextFieldMapping())
	doc.AddFieldMappingsAt("object", stored)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = doc
	return indexMapping
}

func (c *FilesystemClient) Close() error {
	return c.index.Close()
}

func (c *FilesystemClient) Send(activity models.Activity) error {
	ts, err := strconv.ParseInt(activity.Filter.Timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse timestamp: %w", err)
	}

	var object string
	if activity.Object != nil {
		raw, marshalErr := json.Marshal(activity.Object)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal object: %w", marshalErr)
		}
		object = string(raw)
	}

	doc := entry{
		Message:    activity.Message,
		Timestamp:  time.Unix(0, ts),
		Action:     activity.Filter.Fields["action"],
		ObjectType: activity.Filter.Fields["object_type"],
		ObjectID:   activity.Filter.Fields["object_id"],
		Object:     object,
	}

	if err = c.index.Index(uuid.New().String(), doc); err != nil {
		return fmt.Errorf("failed to index activity: %w", err)
	}
	return nil
}

// Search returns the newest matching entries of the last 30 days.
func (c *FilesystemClient) Search(criteria map[string][]string) ([]models.ActivityRecord, error) {
	now := time.Now()
	window := bleve.NewDateRangeQuery(now.Add(-searchWindow), now)
	window.SetField("timestamp")

	request := bleve.NewSearchRequest(bleve.NewConjunctionQuery(criteriaQuery(criteria), window))
	request.Size = searchPageSize
	request.SortBy([]string{"-timestamp"})
	request.Fields = []string{"*"}

	result, err := c.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("failed to search activity: %w", err)
	}

	records := make([]models.ActivityRecord, 0, len(result.Hits))
	for _, hit := range result.Hits {
		records = append(records, toRecord(hit.Fields))
	}
	return records, nil
}

func toRecord(fields map[string]any) models.ActivityRecord {
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}

	record := models.ActivityRecord{
		Message:    str("message"),
		Action:     str("action"),
		ObjectType: str("object_type"),
		ObjectID:   str("object_id"),
	}
	if ts, err := time.Parse(time.RFC3339, str("timestamp")); err == nil {
		record.Timestamp = ts
	}
	if raw := str("object"); raw != "" {
		var object map[string]any
		if json.Unmarshal([]byte(raw), &object) == nil {
			record.Object = object
		}
	}
	return record
}

// criteriaQuery ANDs the fields together. Several values for one field match any of them.
func criteriaQuery(criteria map[string][]string) query.Query {
	var queries []query.Query

	for field, values := range criteria {
		terms := make([]query.Query, 0, len(values))
		for _, value := range values {
			if value == "" {
				continue
			}
			term := bleve.NewTermQuery(value)
			term.SetField(field)
			terms = append(terms, term)
		}

		switch len(terms) {
		case 0:
		case 1:
			queries = append(queries, terms[0])
		default:
			queries = append(queries, bleve.NewDisjunctionQuery(terms...))
		}
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	return bleve.NewConjunctionQuery(queries...)
}
