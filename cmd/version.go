package cmd

// Version is stamped into CEF audit records.
const Version = "0.1.0"
