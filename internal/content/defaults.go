package content

func strptr(s string) *string { return &s }

// DefaultDocument returns the built-in starter dataset. Clients fall back to
// it when the zone API is unreachable, and fresh deployments surface it until
// an admin saves a document of their own.
func DefaultDocument() ZoneData {
	contents := []ContentItem{
		{ID: "folder-class-9th", Name: "Class-9th", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "folder-class-10th", Name: "Class-10th", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "folder-lecture", Name: "Lecture", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "folder-textbook", Name: "Text Book", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "folder-notes", Name: "Notes", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "folder-lecturepdf", Name: "Lecture Pdf", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},

		{ID: "folder-lecture-physics", Name: "Physics", Type: TypeFolder, ParentID: strptr("folder-lecture"), CreatedAt: "2024-01-01"},
		{ID: "folder-lecture-chemistry", Name: "Chemistry", Type: TypeFolder, ParentID: strptr("folder-lecture"), CreatedAt: "2024-01-01"},
		{ID: "folder-lecture-mathematics", Name: "Mathematics", Type: TypeFolder, ParentID: strptr("folder-lecture"), CreatedAt: "2024-01-01"},
		{ID: "folder-lecture-biology", Name: "Biology", Type: TypeFolder, ParentID: strptr("folder-lecture"), CreatedAt: "2024-01-01"},

		{
			ID: "video-sample-1", Name: "Introduction to Classical Mechanics", Type: TypeVideo,
			ParentID: strptr("folder-lecture-physics"), CreatedAt: "2024-01-15",
			VideoURL: "https://www.youtube.com/watch?v=W6NZfCO5SIk", Duration: "45:30",
			Description: "Fundamental concepts of motion, forces, and energy",
		},

		{ID: "folder-textbook-physics", Name: "Physics", Type: TypeFolder, ParentID: strptr("folder-textbook"), CreatedAt: "2024-01-01"},
		{ID: "folder-textbook-chemistry", Name: "Chemistry", Type: TypeFolder, ParentID: strptr("folder-textbook"), CreatedAt: "2024-01-01"},

		{
			ID: "pdf-sample-1", Name: "Physics Class 12 NCERT", Type: TypePDF,
			ParentID: strptr("folder-textbook-physics"), CreatedAt: "2024-01-10",
			PDFURL: "https://drive.google.com/file/d/example/view",
		},
	}

	return Sync(contents, []Video{
		{ID: "video-sample-1", Watched: false},
	})
}
