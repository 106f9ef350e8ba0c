/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for the sweep dashboard.
*/

package report

// dashboardTemplate is the sweep dashboard page. Chart configurations are rendered in a
// script context, where html/template encodes them as JSON.
const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Chroma</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            color: #333;
        }

        .container {
            max-width: 1400px;
            margin: 0 auto;
            padding: 20px;
        }

        .panel {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 20px;
            padding: 30px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(0, 0, 0, 0.1);
        }

        .header {
            text-align: center;
        }

        .header h1 {
            color: #4a5568;
            font-size: 2.5rem;
            margin-bottom: 10px;
        }

        .header p {
            color: #718096;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }

        .stat {
            background: rgba(255, 255, 255, 0.95);
            border-radius: 15px;
            padding: 20px;
            text-align: center;
        }

        .stat .label {
            color: #718096;
            font-size: 0.9rem;
            text-transform: uppercase;
        }

        .stat .value {
            color: #2d3748;
            font-size: 2rem;
            font-weight: 700;
        }

        .charts {
            display: grid;
            grid-template-columns: 2fr 1fr;
            gap: 30px;
        }

        .plane {
            display: inline-grid;
            gap: 1px;
            margin: 0 12px 12px 0;
            vertical-align: top;
        }

        .plane h3 {
            grid-column: 1 / -1;
            color: #4a5568;
            font-size: 0.9rem;
        }

        .swatch {
            width: 14px;
            height: 14px;
            border: 1px solid rgba(0, 0, 0, 0.1);
        }

        .footer {
            text-align: center;
            color: rgba(255, 255, 255, 0.8);
            padding: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="panel header">
            <h1>{{.Title}}</h1>
            <p>Generated on {{.Report.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Report: {{.Report.ID}} | Step: {{.Report.Step}}</p>
        </div>

        <div class="stats">
            <div class="stat">
                <div class="label">Samples</div>
                <div class="value">{{.Report.Samples}}</div>
            </div>
            <div class="stat">
                <div class="label">Classified</div>
                <div class="value">{{.Classified}}</div>
            </div>
            <div class="stat">
                <div class="label">Unclassified</div>
                <div class="value">{{.Report.Unclassified}}</div>
            </div>
            <div class="stat">
                <div class="label">Duration</div>
                <div class="value">{{.Report.Duration}}</div>
            </div>
        </div>

        <div class="panel charts">
            <div>
                <h2>Colours</h2>
                <canvas id="colorChart"></canvas>
            </div>
            <div>
                <h2>Luminosity</h2>
                <canvas id="luminosityChart"></canvas>
            </div>
        </div>

        {{if .Report.Entries}}
        <div class="panel">
            <h2>Grid</h2>
            {{range .Report.Entries}}
            <div class="swatch" style="background: {{.Hex}}" title="R={{.Red}} G={{.Green}} B={{.Blue}} {{.Hex}}: {{.Color}} {{printf "%.3f" .Degree}}, {{.Luminosity}}"></div>
            {{end}}
        </div>
        {{end}}
    </div>

    <div class="footer">
        <p>Chroma - fuzzy colour classifier</p>
    </div>

    <script>
        Chart.defaults.font.family = "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif";
        Chart.defaults.color = '#4a5568';

        new Chart(document.getElementById('colorChart'), {{.ColorChart}});
        new Chart(document.getElementById('luminosityChart'), {{.LuminosityChart}});
    </script>
</body>
</html>`
