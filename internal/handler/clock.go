package handler

import "time"

// timeNow is swapped out in tests that exercise wall-clock windows.
var timeNow = time.Now
