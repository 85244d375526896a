package engine

// BuyerMode is the internal messaging mode a buyer persona resolves to.
type BuyerMode string

const (
	ModePrincipal BuyerMode = "A_Principal"
	ModeOwnerDev  BuyerMode = "B_OwnerDev"
	ModeUnknown   BuyerMode = "C_Unknown"
)

// MapBuyerType resolves a persona code to its buyer mode.
// Codes outside the known set resolve to ModeUnknown.
func MapBuyerType(t BuyerType) BuyerMode {
	switch t {
	case BuyerPrincipal,
		BuyerEngineer,
		BuyerProjectManager,
		BuyerArchitect,
		BuyerSustainability,
		BuyerTechLead:
		return ModePrincipal
	case BuyerOwnerDev,
		BuyerContractor,
		BuyerOwnersRep,
		BuyerDeveloper:
		return ModeOwnerDev
	case BuyerUnknown:
		return ModeUnknown
	default:
		return ModeUnknown
	}
}

// BuyerProfile describes how a buyer mode shapes messaging.
type BuyerProfile struct {
	Mode     BuyerMode `json:"mode"`
	Label    string    `json:"label"`
	Emphasis string    `json:"emphasis"`
}

// Profile returns the messaging profile for a buyer mode.
func Profile(mode BuyerMode) BuyerProfile {
	switch mode {
	case ModePrincipal:
		return BuyerProfile{
			Mode:     mode,
			Label:    "Architecture Principal",
			Emphasis: "Firm-level gatekeeper. Emphasize standardization across projects, predictable deliverables, and reduced variance between what was measured and what is drawn.",
		}
	case ModeOwnerDev:
		return BuyerProfile{
			Mode:     mode,
			Label:    "Owner / Developer",
			Emphasis: "Focused on defensibility. Emphasize schedule certainty, cost control, and reduced escalation risk from unknown existing conditions.",
		}
	default:
		return BuyerProfile{
			Mode:     ModeUnknown,
			Label:    "Unknown Buyer",
			Emphasis: "Role not yet qualified. Lead with verified existing conditions and let the reader self-select the outcome that matters to them.",
		}
	}
}

// Label returns the display label of a buyer persona code.
func (t BuyerType) Label() string {
	switch t {
	case BuyerPrincipal:
		return "Architecture Principal"
	case BuyerOwnerDev:
		return "Owner / Developer"
	case BuyerEngineer:
		return "Engineer"
	case BuyerContractor:
		return "GC / Contractor"
	case BuyerOwnersRep:
		return "Owner's Rep"
	case BuyerProjectManager:
		return "Project Manager"
	case BuyerArchitect:
		return "Architect"
	case BuyerDeveloper:
		return "Developer / Owner"
	case BuyerSustainability:
		return "Sustainability Lead"
	case BuyerTechLead:
		return "Technology Leader"
	default:
		return "Unknown Buyer"
	}
}

// Label returns the display label of a pain point.
func (p PainPoint) Label() string {
	switch p {
	case PainRework:
		return "Rework and RFIs"
	case PainSchedule:
		return "Schedule volatility"
	case PainInconsistency:
		return "Delivery inconsistency"
	case PainTerms:
		return "Terms and liability risk"
	default:
		return string(p)
	}
}

// Framing returns the problem statement a brief is built around.
func (p PainPoint) Framing() string {
	switch p {
	case PainRework:
		return "Field conflicts and RFIs caused by inaccurate existing-conditions documentation drive rework. Frame the brief around eliminating that source of rework."
	case PainSchedule:
		return "Unknown site conditions surface late and move the schedule. Frame the brief around removing existing-conditions surprises before they hit the critical path."
	case PainInconsistency:
		return "Deliverables vary by vendor, crew, and project. Frame the brief around one repeatable standard of measured accuracy and model detail."
	case PainTerms:
		return "Vague scopes and unverifiable claims shift liability onto the buyer. Frame the brief around documented standards and clear, defensible terms."
	default:
		return ""
	}
}

// Directive returns the style instruction for an author mode.
func (a AuthorMode) Directive() string {
	switch a {
	case AuthorFuller:
		return "Write as a systems thinker. Treat existing-conditions data as infrastructure and connect it to design, construction, and operations decisions. Use medium-length sentences and structural framing."
	default:
		return "Write concisely. Use short declarative sentences, strip adjectives, and state each point once in plain words."
	}
}

// Label returns the display label of an author mode.
func (a AuthorMode) Label() string {
	switch a {
	case AuthorFuller:
		return "Fuller (systems framing)"
	default:
		return "Twain (concise, plain)"
	}
}

// Option is a selectable request value with its display label.
type Option struct {
	Value string    `json:"value"`
	Label string    `json:"label"`
	Mode  BuyerMode `json:"mode,omitempty"`
}

// Catalog lists the selectable values for each request field.
type Catalog struct {
	BuyerTypes  []Option `json:"buyerTypes"`
	PainPoints  []Option `json:"painPoints"`
	AuthorModes []Option `json:"authorModes"`
}

// Options returns the catalog of valid request values.
func Options() Catalog {
	c := Catalog{
		BuyerTypes:  make([]Option, 0, len(buyerTypes)),
		PainPoints:  make([]Option, 0, len(painPoints)),
		AuthorModes: make([]Option, 0, len(authorModes)),
	}
	for _, t := range buyerTypes {
		c.BuyerTypes = append(c.BuyerTypes, Option{Value: string(t), Label: t.Label(), Mode: MapBuyerType(t)})
	}
	for _, p := range painPoints {
		c.PainPoints = append(c.PainPoints, Option{Value: string(p), Label: p.Label()})
	}
	for _, a := range authorModes {
		c.AuthorModes = append(c.AuthorModes, Option{Value: string(a), Label: a.Label()})
	}
	return c
}
