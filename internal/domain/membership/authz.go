package membership

import "fmt"

// AuthorizationError reports a role or self-action violation. It is never
// retried automatically by callers.
type AuthorizationError struct {
	MemberID string
	Reason   string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("member %s not authorized: %s", e.MemberID, e.Reason)
}

// ResolveBorrower applies the loan-creation permission matrix. It decides
// who the loan is for and whether auto-approval may be honored, purely from
// its inputs — no storage I/O.
//
//	role       | target          | result
//	-----------+-----------------+---------------------------------------
//	none       | any             | AuthorizationError
//	member     | empty or self   | borrower = requester, no auto-approve
//	member     | other           | AuthorizationError
//	member     | + auto-approve  | AuthorizationError
//	treas/adm  | empty or self   | borrower = requester; auto-approve for
//	           |                 | yourself is an AuthorizationError
//	treas/adm  | other           | borrower = target; auto-approve honored
//
// The caller still has to verify a non-self borrower is an active member of
// the same group before creating anything.
func ResolveBorrower(requesterID string, role Role, targetID string, autoApprove bool) (string, bool, error) {
	if role == RoleNone {
		return "", false, &AuthorizationError{MemberID: requesterID, Reason: "not an active member of the group"}
	}

	borrower := targetID
	if borrower == "" {
		borrower = requesterID
	}

	if !role.CanManageLoans() {
		if borrower != requesterID {
			return "", false, &AuthorizationError{MemberID: requesterID, Reason: "members may only request loans for themselves"}
		}
		if autoApprove {
			return "", false, &AuthorizationError{MemberID: requesterID, Reason: "members may not request auto-approval"}
		}
		return borrower, false, nil
	}

	if autoApprove && borrower == requesterID {
		return "", false, &AuthorizationError{MemberID: requesterID, Reason: "auto-approval of your own loan is not permitted"}
	}
	return borrower, autoApprove && borrower != requesterID, nil
}
