package remote

// Backend endpoint paths
const (
	PathChallenges       = "/api/challenges"
	PathChallenge        = "/api/challenges/%s"
	PathJoinChallenge    = "/api/challenges/%s/join"
	PathCompleteChall    = "/api/challenges/%s/complete"
	PathSubmitResult     = "/api/challenges/%s/submit"
	PathParticipation    = "/api/challenges/%s/participation"
	PathMyParticipations = "/api/challenges/my-participations"
	PathActivity         = "/api/challenges/activity"
	PathSearch           = "/api/challenges/search"
	PathSettings         = "/api/admin/settings"
)

// Query parameter names
const (
	ParamUserEmail = "user_email"
	ParamLimit     = "limit"
	ParamQuery     = "q"
	ParamCategory  = "category"
	ParamStatus    = "status"
	ParamSort      = "sort"
)

// Error context strings
const (
	ErrContextBuildRequest  = "failed to build request"
	ErrContextDoRequest     = "request failed"
	ErrContextDecodeBody    = "failed to decode response body"
	ErrContextEncodeBody    = "failed to encode request body"
	ErrContextUnexpectedTwo = "unexpected status"
)

// Log messages
const (
	LogMsgRequestFailed = "Backend request failed"
	LogMsgNon2xxStatus  = "Backend returned non-2xx status"
)
