// Package embed declares the embedding contracts ChessBuddy's core
// depends on without implementing (spec §6 Embedder contract, §1
// Non-goals: "training or hosting embedding models"). Concrete OpenAI or
// other HTTP-backed implementations are external collaborators.
package embed

import "context"

// PositionEmbedder turns a FEN into a fixed-length vector tagged with the
// embedding model's version. The ingestion orchestrator calls Embed for
// every recorded position, including FENs that already have a stored
// embedding; it persists the result only when no embedding is stored or
// the stored version differs from the returned one.
type PositionEmbedder interface {
	Embed(ctx context.Context, fen string) (vector []float32, version string, err error)
}

// TextEmbedder turns free text into a fixed-length vector tagged with the
// model name that produced it, used by the optional text-index
// collaborator.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) (vector []float32, model string, err error)
}

// PositionVectorDimension is the required length of every vector a
// PositionEmbedder returns (spec §3 FEN embedding, property 5).
const PositionVectorDimension = 768

// TextVectorDimension is the required length of every vector a
// TextEmbedder returns (spec §3 Search document, property 5).
const TextVectorDimension = 1536
