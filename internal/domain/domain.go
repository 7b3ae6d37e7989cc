package domain

type Document struct {
	// Label is the source name (file name, feed item) or empty for ad-hoc text.
	Label string
	Text  string
}

type Entity struct {
	Text  string
	Label string
}

type ToneScore struct {
	Polarity     float64
	Subjectivity float64
}

// Report is the per-document output. Stage failures are kept in the
// matching *Err field so the other stages stay usable.
type Report struct {
	Document Document
	Summary  string
	Entities []Entity
	Tone     ToneScore

	SummaryErr  error
	EntitiesErr error
	ToneErr     error

	// Err is set when the document itself could not be produced.
	Err error
}

func (r Report) Failed() bool {
	return r.Err != nil
}

func (r Report) Partial() bool {
	return r.SummaryErr != nil || r.EntitiesErr != nil || r.ToneErr != nil
}
