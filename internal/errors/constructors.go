package errors

// Convenience constructors for common failure modes in the build pipeline.

// Config errors

func ConfigNotFound(path string) *SiteGenError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func TemplateMarkerMissing(templatePath, marker string) *SiteGenError {
	return New(CategoryConfig, SeverityFatal, "template is missing a required marker").
		WithContext("template", templatePath).
		WithContext("marker", marker)
}

func ManifestNotFound(path string, cause error) *SiteGenError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "build manifest not found").
		WithContext("path", path)
}

func ManifestEntryMissing(path, entry string) *SiteGenError {
	return New(CategoryConfig, SeverityFatal, "build manifest has no entry for configured source").
		WithContext("path", path).
		WithContext("entry", entry)
}

func ContentRootMissing(path string) *SiteGenError {
	return New(CategoryConfig, SeverityFatal, "content root directory not found").
		WithContext("path", path)
}

// Invariant violations (content authoring defects)

func DuplicatePublicSlug(publicSlug string) *SiteGenError {
	return New(CategoryValidation, SeverityFatal, "duplicate public slug").
		WithContext("public_slug", publicSlug)
}

func FileNameMismatch(publicSlug, expected, actual string) *SiteGenError {
	return New(CategoryValidation, SeverityFatal, "content file name does not match public slug").
		WithContext("public_slug", publicSlug).
		WithContext("expected", expected).
		WithContext("actual", actual)
}

func NoProjectsDiscovered(contentRoot string) *SiteGenError {
	return New(CategoryValidation, SeverityFatal, "no valid projects discovered, refusing to emit an empty site").
		WithContext("content_root", contentRoot)
}

func IdentityUnresolved(file string) *SiteGenError {
	return New(CategoryContent, SeverityFatal, "content file does not resolve to a project identity").
		WithContext("file", file)
}

// Build pipeline errors

func EmitFailed(path string, cause error) *SiteGenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to write output file").
		WithContext("path", path)
}

func ContentReadError(file string, cause error) *SiteGenError {
	return Wrap(cause, CategoryContent, SeverityFatal, "failed to read content file").
		WithContext("file", file)
}

func InternalError(message string, cause error) *SiteGenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
