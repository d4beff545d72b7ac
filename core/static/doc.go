// Package static composes the file serving stages of a pipeline: default
// documents, directory listing, the send file fallback and static files.
//
// # Composition
//
// UseFileServer and its variants append the stages to a pipeline.Builder in
// a fixed order and return the builder:
//
//	b := pipeline.New[*pipeline.Context]()
//
//	// default-files, send-file-fallback, static-files from "."
//	static.UseFileServer(b)
//
//	// same, plus directory-browser
//	static.UseFileServerWithBrowsing(b, true)
//
//	// every stage scoped to /assets
//	static.UseFileServerAt(b, "/assets")
//
//	// full control
//	static.UseFileServerWithOptions(b, &static.FileServerOptions{
//		RequestPath:             "/docs",
//		FileSystem:              http.Dir("./public/docs"),
//		EnableDefaultFiles:      true,
//		EnableDirectoryBrowsing: true,
//		StaticFiles: static.StaticFileOptions{
//			OnPrepareResponse: func(resp static.StaticFileResponse) {
//				resp.Header.Set("Cache-Control", "public, max-age=3600")
//			},
//		},
//	})
//
// Composition runs at startup. Invalid arguments (nil builder, nil options,
// a request path not starting with '/') panic with an error wrapping
// ErrInvalidArgument, before any stage is appended.
//
// # Stages
//
// The stages can also be registered on their own with UseDefaultFiles,
// UseDirectoryBrowser, UseSendFileFallback, UseSendFile and UseStaticFiles.
// All of them handle only GET and HEAD and forward everything they do not
// serve to the next stage.
//
//   - default-files rewrites "/dir/" to "/dir/index.html" (or another
//     configured name) when that file exists, and redirects "/dir" to "/dir/".
//   - directory-browser renders an HTML listing for directories.
//   - send-file-fallback installs ServeContentSender unless a FileSender is
//     already installed, for example an AccelRedirectSender through UseSendFile.
//   - static-files resolves the content type, sets ETag, calls
//     OnPrepareResponse and hands the file to the installed FileSender.
//
// Files come from an http.FileSystem: http.Dir, http.FS over an embed.FS,
// or an object storage backed implementation such as integration/s3fs.
package static
