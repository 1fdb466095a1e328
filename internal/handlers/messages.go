package handlers

// User-facing error messages
const (
	msgInvalidRequest       = "잘못된 요청입니다."
	msgTitleContentRequired = "제목과 내용은 필수입니다."
	msgLoadFailed           = "데이터를 불러오는 중 오류가 발생했습니다."
	msgUnknownContentType   = "알 수 없는 콘텐츠 유형입니다."
	msgNotFound             = "요청한 항목을 찾을 수 없습니다."
	msgForbidden            = "권한이 없습니다."
	msgForbiddenDelete      = "자신의 계정만 삭제할 수 있습니다."
	msgCommentForbidden     = "자신의 댓글만 삭제할 수 있습니다."
	msgDeleteIncomplete     = "계정 삭제 중 일부 단계가 실패했습니다."
	msgUserIDRequired       = "삭제할 사용자 ID가 필요합니다."
	msgImageHostNotAllowed  = "허용되지 않은 이미지 주소입니다."
	msgPriceRequired        = "판매 가격을 입력해 주세요."
	msgFollowSelf           = "자기 자신은 팔로우할 수 없습니다."
	msgFollowInFlight       = "이미 처리 중인 요청입니다."
	msgUsernameTaken        = "이미 사용 중인 사용자 이름입니다."
	msgInvalidIDToken       = "유효하지 않은 인증 토큰입니다."
	msgFileRequired         = "업로드할 파일이 없습니다."
	msgFileTooLarge         = "파일 크기가 너무 큽니다."
	msgUnsupportedFile      = "지원하지 않는 파일 형식입니다."
	msgInvalidFolder        = "알 수 없는 업로드 경로입니다."
)
