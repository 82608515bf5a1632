package chessmodel

import (
	"fmt"
	"time"
)

// Color is a chess side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// SideToMove is the FEN-field spelling of a side to move ("w"/"b").
type SideToMove string

const (
	SideWhite SideToMove = "w"
	SideBlack SideToMove = "b"
)

// Result is a PGN game result tag.
type Result string

const (
	ResultWhiteWin Result = "1-0"
	ResultBlackWin Result = "0-1"
	ResultDraw     Result = "1/2-1/2"
	ResultUnknown  Result = "*"
)

// PatternType classifies a catalog entry (§3 pattern catalog entry).
type PatternType string

const (
	PatternStrategic   PatternType = "strategic"
	PatternTactical    PatternType = "tactical"
	PatternEndgame     PatternType = "endgame"
	PatternOpeningTrap PatternType = "opening_trap"
)

// Outcome classifies how a detected pattern's game ended for its
// initiating color (§4.5).
type Outcome string

const (
	OutcomeVictory      Outcome = "victory"
	OutcomeDrawAdvantage Outcome = "draw_advantage"
	OutcomeDrawNeutral   Outcome = "draw_neutral"
	OutcomeDefeat        Outcome = "defeat"
)

// Player is a person or account identified by FIDE id, else by normalized
// full name (§3 Player).
type Player struct {
	PlayerID  string
	FullName  string
	FideID    Option[string]
	CreatedAt time.Time
}

func (p Player) String() string {
	fide, _ := p.FideID.Get()
	return "Player{" + p.PlayerID + " " + p.FullName + " fide=" + fide + "}"
}

// Rating is a point-in-time rating snapshot for a player (§3 Rating).
type Rating struct {
	PlayerID   string
	RatingDate time.Time
	Standard   Option[int]
	Rapid      Option[int]
	Blitz      Option[int]
}

// Batch is one ingestion run of a PGN file (§3 Batch).
type Batch struct {
	BatchID     string
	SourcePath  string
	Label       string
	Checksum    string
	IngestedAt  time.Time
}

func (b Batch) String() string {
	return "Batch{" + b.BatchID + " " + b.SourcePath + " label=" + b.Label + "}"
}

// Header holds the raw PGN tag values extracted for a game, before they
// are resolved against Player rows (§4.3 Header extraction).
type Header struct {
	White       string
	Black       string
	Event       Option[string]
	Site        Option[string]
	GameDate    Option[time.Time]
	Round       Option[string]
	ECO         Option[string]
	Opening     Option[string]
	WhiteElo    Option[int]
	BlackElo    Option[int]
	WhiteFideID Option[string]
	BlackFideID Option[string]
	Result      Result
	Termination Option[string]
}

// Game is one recorded chess game (§3 Game).
type Game struct {
	GameID      string
	WhiteID     string
	BlackID     string
	Event       Option[string]
	Site        Option[string]
	GameDate    Option[time.Time]
	Round       Option[string]
	ECO         Option[string]
	Opening     Option[string]
	WhiteElo    Option[int]
	BlackElo    Option[int]
	Result      Result
	Termination Option[string]
	SourcePGN   string
	PGNHash     string
	BatchID     string
	IngestedAt  time.Time
}

func (g Game) String() string {
	return "Game{" + g.GameID + " white=" + g.WhiteID + " black=" + g.BlackID + " result=" + string(g.Result) + "}"
}

// FEN is a content-addressed board position (§3 FEN).
type FEN struct {
	FENID              string
	FENText            string
	SideToMove         SideToMove
	CastlingRights     string
	EnPassantFile      Option[string]
	MaterialSignature  string
}

func (f FEN) String() string {
	return "FEN{" + f.FENID + " " + f.FENText + " material=" + f.MaterialSignature + "}"
}

// FENEmbedding is the 768-dimensional vector for a FEN (§3 FEN embedding).
type FENEmbedding struct {
	FENID            string
	Embedding        []float32
	EmbeddingVersion string
	CreatedAt        time.Time
}

// Position is one recorded ply of a game (§3 Position).
type Position struct {
	GameID     string
	PlyNumber  int
	FENID      string
	SideToMove SideToMove
	SAN        string
	UCI        Option[string]
	FENBefore  string
	FENAfter   string
	Clock      Option[int]
	EvalCP     Option[int]
	IsCapture  bool
	IsCheck    bool
	IsMate     bool
	MotifFlags []string
}

// PatternCatalogEntry is a seeded, stable description of a detector
// (§3 Pattern catalog entry).
type PatternCatalogEntry struct {
	PatternID        string
	PatternName      string
	PatternType      PatternType
	Description      Option[string]
	DetectorModule   string
	SuccessCriteria  Option[string]
	Enabled          bool
	CreatedAt        time.Time
}

// PatternDetection is one detector's verdict on one game (§3 Pattern
// detection).
type PatternDetection struct {
	DetectionID    string
	GameID         string
	PatternID      string
	DetectedByColor Color
	Success        bool
	Confidence     float64
	StartPly       Option[int]
	EndPly         Option[int]
	Outcome        Option[Outcome]
	Metadata       map[string]any
	CreatedAt      time.Time
}

func (d PatternDetection) String() string {
	outcome, _ := d.Outcome.Get()
	return fmt.Sprintf("PatternDetection{%s game=%s color=%s success=%t confidence=%.2f outcome=%s}",
		d.PatternID, d.GameID, d.DetectedByColor, d.Success, d.Confidence, outcome)
}

// SearchDocument is the external text-search collaborator's persisted
// unit (§3 Search document); the core only produces and hands these off,
// it never queries them back.
type SearchDocument struct {
	DocumentID string
	EntityType string
	EntityID   string
	Content    string
	Embedding  []float32
	Model      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Entity types recognized by the text-index contract (§6).
const (
	EntityGame      = "game"
	EntityPlayer    = "player"
	EntityFEN       = "fen"
	EntityBatch     = "batch"
	EntityEmbedding = "embedding"
)
