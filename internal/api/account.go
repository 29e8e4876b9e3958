package api

import "context"

// AccountInfo identifies the authenticated employee: the account id doubles
// as the role id for time-tracking calls, and the role's company id selects
// the employer.
type AccountInfo struct {
	ID   string          `json:"id"`
	Role AccountInfoRole `json:"role"`
}

type AccountInfoRole struct {
	ID      OID `json:"_id"`
	Company OID `json:"company"`
}

// OID unwraps the Mongo-style {"$oid": "..."} object id the account
// endpoint uses.
type OID struct {
	ID string `json:"$oid"`
}

// AccountInfo fetches the caller's account record. The endpoint returns a
// one-element list.
func (s *Session) AccountInfo(ctx context.Context) (*AccountInfo, error) {
	var list []AccountInfo
	if err := s.Get(ctx, "auth_ext/get_account_info", nil, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrUnexpectedResponse
	}
	return &list[0], nil
}
