package engine

import (
	"fmt"
	"slices"
	"strings"
)

// MinContextLength is the minimum trimmed length of Request.ProjectContext.
const MinContextLength = 10

// BuyerType is a buyer persona code supplied by the caller.
type BuyerType string

// Buyer persona codes. The A/B/C codes name a buyer mode directly;
// BP1 through BP8 are persona codes mapped onto a mode by MapBuyerType.
const (
	BuyerPrincipal      BuyerType = "A_Principal"
	BuyerOwnerDev       BuyerType = "B_OwnerDev"
	BuyerUnknown        BuyerType = "C_Unknown"
	BuyerEngineer       BuyerType = "BP1"
	BuyerContractor     BuyerType = "BP2"
	BuyerOwnersRep      BuyerType = "BP3"
	BuyerProjectManager BuyerType = "BP4"
	BuyerArchitect      BuyerType = "BP5"
	BuyerDeveloper      BuyerType = "BP6"
	BuyerSustainability BuyerType = "BP7"
	BuyerTechLead       BuyerType = "BP8"
)

var buyerTypes = []BuyerType{
	BuyerPrincipal, BuyerOwnerDev, BuyerUnknown,
	BuyerEngineer, BuyerContractor, BuyerOwnersRep, BuyerProjectManager,
	BuyerArchitect, BuyerDeveloper, BuyerSustainability, BuyerTechLead,
}

// PainPoint selects the problem framing of a brief.
type PainPoint string

const (
	PainRework        PainPoint = "Rework_RFI"
	PainSchedule      PainPoint = "ScheduleVolatility"
	PainInconsistency PainPoint = "Inconsistency"
	PainTerms         PainPoint = "Terms_Risk"
)

var painPoints = []PainPoint{PainRework, PainSchedule, PainInconsistency, PainTerms}

// AuthorMode is a stylistic directive applied independently of content.
type AuthorMode string

const (
	AuthorTwain  AuthorMode = "Twain"
	AuthorFuller AuthorMode = "Fuller"
)

// DefaultAuthorMode applies when a request omits the author mode.
const DefaultAuthorMode = AuthorTwain

var authorModes = []AuthorMode{AuthorTwain, AuthorFuller}

// Request is the input to a single generation.
type Request struct {
	BuyerType      BuyerType  `json:"buyerType"`
	PainPoint      PainPoint  `json:"painPoint"`
	ProjectContext string     `json:"projectContext"`
	AuthorMode     AuthorMode `json:"authorMode,omitempty"`
	Situation      string     `json:"situation,omitempty"`
}

// Validate normalizes the request and rejects unknown codes or a project
// context shorter than MinContextLength. Errors wrap ErrInvalidRequest.
func (r *Request) Validate() error {
	r.ProjectContext = strings.TrimSpace(r.ProjectContext)
	r.Situation = strings.TrimSpace(r.Situation)
	if r.AuthorMode == "" {
		r.AuthorMode = DefaultAuthorMode
	}

	if !slices.Contains(buyerTypes, r.BuyerType) {
		return fmt.Errorf("%w: unknown buyerType %q", ErrInvalidRequest, r.BuyerType)
	}
	if !slices.Contains(painPoints, r.PainPoint) {
		return fmt.Errorf("%w: unknown painPoint %q", ErrInvalidRequest, r.PainPoint)
	}
	if !slices.Contains(authorModes, r.AuthorMode) {
		return fmt.Errorf("%w: unknown authorMode %q", ErrInvalidRequest, r.AuthorMode)
	}
	if n := len([]rune(r.ProjectContext)); n < MinContextLength {
		return fmt.Errorf(
			"%w: projectContext must be at least %d characters, got %d",
			ErrInvalidRequest, MinContextLength, n,
		)
	}
	return nil
}
