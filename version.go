package gridpath

// Version is the release of the gridpath module.
const Version = "0.2.0"
