package api

import "context"

// ActivePolicy references the time and break policy documents currently in
// force for a role.
type ActivePolicy struct {
	TimePolicy  string `json:"timePolicy"`
	BreakPolicy string `json:"breakPolicy"`
}

// BreakPolicy is a company break policy: the full set of company break types
// plus the subset the employee's role may actually take.
type BreakPolicy struct {
	ID            string              `json:"id"`
	BreakTypes    []BreakType         `json:"companyBreakTypes"`
	EligibleTypes []EligibleBreakType `json:"eligibleBreakTypes"`
}

type BreakType struct {
	ID               string   `json:"id"`
	Deleted          bool     `json:"isDeleted"`
	Description      string   `json:"description"`
	MinLength        *float64 `json:"minLength"`
	EnforceMinLength bool     `json:"enforceMinLength"`
	MaxLength        *float64 `json:"maxLength"`
	EnforceMaxLength bool     `json:"enforceMaxLength"`
}

type EligibleBreakType struct {
	AllowManual bool   `json:"allowManual"`
	BreakTypeID string `json:"breakType"`
}

// ManualBreakType returns the break type usable for employee-initiated
// breaks: not deleted and eligible with allowManual. Returns nil when the
// policy has none. When several qualify the first listed wins.
func (p *BreakPolicy) ManualBreakType() *BreakType {
	eligible := make(map[string]bool, len(p.EligibleTypes))
	for _, e := range p.EligibleTypes {
		if e.AllowManual {
			eligible[e.BreakTypeID] = true
		}
	}
	for i := range p.BreakTypes {
		bt := &p.BreakTypes[i]
		if !bt.Deleted && eligible[bt.ID] {
			return bt
		}
	}
	return nil
}

// ActiveBreakPolicy resolves the active policy for the session's role. The
// endpoint returns a map keyed by role id.
func (s *Session) ActiveBreakPolicy(ctx context.Context) (*ActivePolicy, error) {
	var byRole map[string]ActivePolicy
	err := s.Get(ctx, "time_tracking/api/time_entry_policies/get_active_policy", nil, &byRole)
	if err != nil {
		return nil, err
	}
	policy, ok := byRole[s.role]
	if !ok {
		return nil, ErrUnexpectedResponse
	}
	return &policy, nil
}

// FetchBreakPolicy fetches the break policy document with the given id.
func (s *Session) FetchBreakPolicy(ctx context.Context, id string) (*BreakPolicy, error) {
	var policy BreakPolicy
	if err := s.Get(ctx, "time_tracking/api/time_entry_break_policies/"+id, nil, &policy); err != nil {
		return nil, err
	}
	return &policy, nil
}
