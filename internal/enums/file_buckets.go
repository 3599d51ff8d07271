package enums

const (
	FILE_BUCKET_BOARD_THUMBNAIL = "board-thumbnails"
)
