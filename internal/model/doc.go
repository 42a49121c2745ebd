package model

// Package model defines the value types shared by workers and views: download
// requests and results, batch progress, library entries, Drive folders and
// videos, and item status enums. Values cross goroutine boundaries by copy.
