package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconDocument = "\U000F0219"
	IconPencil   = "\U000F03EB"
	IconPlus     = ""
	IconSync     = "\U000F04E6"
	IconLock     = ""
	IconWarning  = ""
	IconCheck    = ""
)
