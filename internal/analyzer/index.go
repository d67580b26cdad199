package analyzer

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/philippgille/chromem-go"

	"github.com/ternarybob/hunter/internal/knowledge"
)

const (
	collectionName = "sales-playbooks"

	// localEmbeddingDims sizes the hashed bag-of-words fallback vectors.
	localEmbeddingDims = 256
)

// knowledgeIndex wraps a chromem collection over the playbook corpus.
type knowledgeIndex struct {
	collection *chromem.Collection
}

// newKnowledgeIndex builds an in-memory vector collection from the loaded
// documents. Embeddings come from the LLM client when configured, otherwise
// from a deterministic local embedding so retrieval still works offline.
func newKnowledgeIndex(ctx context.Context, llm *LLMClient, docs []knowledge.Document) (*knowledgeIndex, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no knowledge documents to index")
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc(llm))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	var cdocs []chromem.Document
	for _, doc := range docs {
		cdocs = append(cdocs, chromem.Document{
			ID:      doc.Source,
			Content: doc.Text,
			Metadata: map[string]string{
				"source": doc.Source,
				"type":   doc.Type,
			},
		})
	}

	if err := collection.AddDocuments(ctx, cdocs, 1); err != nil {
		return nil, fmt.Errorf("index documents: %w", err)
	}

	return &knowledgeIndex{collection: collection}, nil
}

// Query returns the contents of the top-k most similar documents.
func (ki *knowledgeIndex) Query(ctx context.Context, query string, topK int) ([]string, error) {
	count := ki.collection.Count()
	if count == 0 {
		return nil, fmt.Errorf("empty index")
	}
	if topK > count {
		topK = count
	}

	results, err := ki.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	var texts []string
	for _, r := range results {
		texts = append(texts, r.Content)
	}
	return texts, nil
}

// Size returns the number of indexed documents.
func (ki *knowledgeIndex) Size() int {
	if ki == nil || ki.collection == nil {
		return 0
	}
	return ki.collection.Count()
}

// embeddingFunc selects the embedding implementation once at construction.
func embeddingFunc(llm *LLMClient) chromem.EmbeddingFunc {
	if llm.IsConfigured() {
		return func(ctx context.Context, text string) ([]float32, error) {
			return llm.Embed(ctx, text)
		}
	}
	return localEmbedding
}

// localEmbedding is a deterministic hashed bag-of-words embedding. It is no
// substitute for a learned model but gives stable, meaningful-enough cosine
// similarity over small playbook corpora without any external service.
func localEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, localEmbeddingDims)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?()[]{}'\"")
		if len(word) < 2 {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%localEmbeddingDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		// Avoid a zero vector; chromem expects unit-length embeddings.
		vec[0] = 1
		return vec, nil
	}

	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}
