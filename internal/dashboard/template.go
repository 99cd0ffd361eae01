package dashboard

// pageTemplate is the rendered HTML report. Auto-refreshes every 30 seconds.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>🚀 File Vault Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; color: white; margin-bottom: 30px; }
        .header h1 { font-size: 2.2rem; margin-bottom: 8px; }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 18px;
            margin-bottom: 28px;
        }
        .stat-card {
            background: white; border-radius: 12px; padding: 22px;
            box-shadow: 0 8px 24px rgba(0,0,0,0.12); text-align: center;
        }
        .stat-number { font-size: 1.8rem; font-weight: bold; color: #667eea; }
        .stat-label { color: #666; font-size: 0.85rem; text-transform: uppercase; letter-spacing: 1px; }
        .section {
            background: white; border-radius: 12px; padding: 26px;
            margin-bottom: 26px; box-shadow: 0 8px 24px rgba(0,0,0,0.12);
        }
        .section h2 { margin-bottom: 16px; border-bottom: 2px solid #667eea; padding-bottom: 8px; }
        .file-item {
            display: flex; align-items: center; padding: 12px; margin-bottom: 10px;
            background: #f8f9fa; border-radius: 8px; border-left: 4px solid #667eea;
        }
        .file-icon { font-size: 1.3rem; margin-right: 12px; }
        .file-name { font-weight: bold; }
        .file-meta { color: #666; font-size: 0.85rem; }
        .config-grid {
            display: grid; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); gap: 16px;
        }
        .config-item {
            padding: 12px; background: #f8f9fa; border-radius: 8px; border-left: 4px solid #28a745;
        }
        .config-label { font-weight: bold; }
        .config-value { color: #666; font-family: monospace; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🚀 File Vault Dashboard</h1>
            <p>Bot is running and operational</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-number">{{.Stats.TotalFiles}}</div>
                <div class="stat-label">Total Files</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{.Stats.TotalSize}}</div>
                <div class="stat-label">Storage Used</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{.Stats.RecentUploads}}</div>
                <div class="stat-label">Today's Uploads</div>
            </div>
            <div class="stat-card">
                <div class="stat-number">{{len .Stats.FileTypes}}</div>
                <div class="stat-label">File Types</div>
            </div>
        </div>

        <div class="section">
            <h2>📊 Recent Files</h2>
            {{if .Recent}}
                {{range .Recent}}
                <div class="file-item">
                    <div class="file-icon">{{if eq .Type "video"}}🎥{{else if eq .Type "audio"}}🎵{{else if eq .Type "photo"}}🖼️{{else}}📄{{end}}</div>
                    <div>
                        <div class="file-name">{{.Name}}</div>
                        <div class="file-meta">{{.Size}} • {{.Type}} • ID: {{.FileID}}</div>
                    </div>
                </div>
                {{end}}
            {{else}}
                <p>No files uploaded yet.</p>
            {{end}}
        </div>

        <div class="section">
            <h2>⚙️ Configuration</h2>
            <div class="config-grid">
                <div class="config-item">
                    <div class="config-label">Storage Region</div>
                    <div class="config-value">{{.Stats.StorageRegion}}</div>
                </div>
                <div class="config-item">
                    <div class="config-label">Backup Channel</div>
                    <div class="config-value">{{.Stats.BackupChannel}}</div>
                </div>
                <div class="config-item">
                    <div class="config-label">File Size Limit</div>
                    <div class="config-value">4 GB</div>
                </div>
                <div class="config-item">
                    <div class="config-label">Streaming Expiry</div>
                    <div class="config-value">24 hours</div>
                </div>
            </div>
        </div>

        <div class="section">
            <h2>📈 File Type Distribution</h2>
            {{if .Stats.FileTypes}}
            <div class="config-grid">
                {{range $type, $count := .Stats.FileTypes}}
                <div class="config-item">
                    <div class="config-label">{{$type}} files</div>
                    <div class="config-value">{{$count}}</div>
                </div>
                {{end}}
            </div>
            {{else}}
                <p>No file types to display.</p>
            {{end}}
        </div>
    </div>

    <script>
        setTimeout(() => location.reload(), 30000);
    </script>
</body>
</html>
`
