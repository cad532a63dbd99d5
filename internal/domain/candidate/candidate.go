package candidate

// Hit is a single raw similarity hit from the embedding corpus.
// Ephemeral: it exists only within one search invocation.
type Hit struct {
	resumeID string
	ownerID  string
	rawScore float64
}

// NewHit creates a raw search hit. rawScore is a similarity in [0,1].
func NewHit(resumeID, ownerID string, rawScore float64) Hit {
	return Hit{resumeID: resumeID, ownerID: ownerID, rawScore: rawScore}
}

// ResumeID returns the identifier of the resume this embedding represents.
func (h Hit) ResumeID() string { return h.resumeID }

// OwnerID returns the identifier of the resume owner.
func (h Hit) OwnerID() string { return h.ownerID }

// RawScore returns the raw similarity metric (higher is more similar).
func (h Hit) RawScore() float64 { return h.rawScore }

// Ref identifies a resume and its owner without a score. Used by the
// unranked listing fallback.
type Ref struct {
	OwnerID  string
	ResumeID string
}

// Candidate is a deduplicated, ranked candidate: one entry per owner,
// carrying that owner's top-scoring resume.
type Candidate struct {
	ownerID  string
	resumeID string
	score    int
}

// New creates a ranked candidate. score must be in [0,100].
func New(ownerID, resumeID string, score int) Candidate {
	return Candidate{ownerID: ownerID, resumeID: resumeID, score: score}
}

// OwnerID returns the owner identifier, unique within one result set.
func (c Candidate) OwnerID() string { return c.ownerID }

// ResumeID returns the top-scoring resume for this owner.
func (c Candidate) ResumeID() string { return c.resumeID }

// Score returns the normalized match score in [0,100].
func (c Candidate) Score() int { return c.score }
